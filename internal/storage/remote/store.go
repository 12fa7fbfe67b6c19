package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"noticeboard/internal/config"
)

const (
	collectionPath  = "/notices"
	headerRequestID = "X-Request-Id"
	maxBodyBytes    = 4 << 20
)

// Store talks to the notices collection endpoint.
type Store struct {
	collection string
	timeout    time.Duration
	maxBody    int64
	client     *http.Client
}

func NewStore(cfg config.AppConfig) *Store {
	return &Store{
		collection: strings.TrimRight(cfg.BaseURL, "/") + collectionPath,
		timeout:    cfg.RequestTimeout,
		maxBody:    maxBodyBytes,
		client:     &http.Client{},
	}
}

// List fetches the whole collection in server order. Escape sequences and
// control characters are removed from titles and descriptions.
func (s *Store) List(ctx context.Context) ([]Notice, error) {
	body, err := s.do(ctx, http.MethodGet, s.collection, nil)
	if err != nil {
		return nil, err
	}

	var notices []Notice
	if err := json.Unmarshal(body, &notices); err != nil {
		return nil, failure(ErrDecode, http.MethodGet, s.collection, err)
	}
	if notices == nil {
		notices = []Notice{}
	}
	for i := range notices {
		notices[i] = notices[i].sanitized()
	}
	return notices, nil
}

func (s *Store) Update(ctx context.Context, id int64, p Payload) error {
	_, err := s.do(ctx, http.MethodPut, s.noticeURL(id), p)
	return err
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	_, err := s.do(ctx, http.MethodDelete, s.noticeURL(id), nil)
	return err
}

func (s *Store) noticeURL(id int64) string {
	return s.collection + "/" + url.PathEscape(strconv.FormatInt(id, 10))
}

func (s *Store) do(ctx context.Context, method, target string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s %s body", method, target)
		}
		reader = bytes.NewReader(b)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "build %s %s", method, target)
	}

	reqID := ulid.Make().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestID, reqID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := log.With().
		Str("req.id", reqID).
		Str("req.method", method).
		Str("req.url", target).
		Logger()

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", time.Since(start)).Msg("request failed")
		return nil, failure(ErrNetwork, method, target, err)
	}
	defer resp.Body.Close()

	// one byte past the cap tells a full body from a cut one
	body, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBody+1))
	logger.Debug().
		Int("resp.status", resp.StatusCode).
		Int("resp.bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WithStack(&StatusError{
			Method:     method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
		})
	}
	if err != nil {
		return nil, failure(ErrNetwork, method, target, err)
	}
	if int64(len(body)) > s.maxBody {
		return nil, failure(ErrTooLarge, method, target, fmt.Errorf("body exceeds %d bytes", s.maxBody))
	}
	return body, nil
}
