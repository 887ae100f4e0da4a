package questionbank

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

var (
	// ErrLoad marks any failure to fetch or decode the quiz data document.
	// A failed load leaves the quiz with no sections available.
	ErrLoad = errors.New("quiz data load failed")

	// ErrInvalidDocument marks a document whose shape does not match the
	// expected schema. Wrapped by ErrLoad when surfaced from Load.
	ErrInvalidDocument = errors.New("invalid quiz document")
)

// Load fetches the quiz data document from source — an http(s) URL or a
// local file path — then decodes and validates it. It is called once at
// startup; the returned bank is read-only for the rest of the process.
func Load(ctx context.Context, source string) (*QuestionBank, error) {
	data, err := fetch(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}

	bank, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoad, err)
	}
	return bank, nil
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, source)
		}
		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(source)
}
