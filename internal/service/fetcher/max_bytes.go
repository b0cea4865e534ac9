package fetcher

import (
	"errors"
	"io"
	"net/http"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
)

const (
	defaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 응답 본문의 크기를 제한하지 않습니다.
	NoLimit = -1
)

func newErrResponseBodyTooLarge(limit int64) error {
	return apperrors.Newf(apperrors.Unavailable, "응답 본문의 크기가 허용된 최대 크기(%d bytes)를 초과하였습니다", limit)
}

type maxBytesReader struct {
	rc    io.ReadCloser
	limit int64
}

func (r *maxBytesReader) Read(p []byte) (int, error) {
	n, err := r.rc.Read(p)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return n, newErrResponseBodyTooLarge(r.limit)
		}
	}

	return n, err
}

func (r *maxBytesReader) Close() error {
	return r.rc.Close()
}

// MaxBytesFetcher 응답 본문의 크기를 제한하는 데코레이터입니다.
type MaxBytesFetcher struct {
	delegate Fetcher
	limit    int64
}

// NewMaxBytesFetcher limit이 NoLimit이면 delegate를 그대로 반환하고, 0 이하이면 기본값(10MB)을 사용합니다.
func NewMaxBytesFetcher(delegate Fetcher, limit int64) Fetcher {
	if limit == NoLimit {
		return delegate
	}
	if limit <= 0 {
		limit = defaultMaxBytes
	}

	return &MaxBytesFetcher{delegate: delegate, limit: limit}
}

func (f *MaxBytesFetcher) Do(req *http.Request) (*http.Response, error) {
	resp, err := f.delegate.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.ContentLength > f.limit {
		drainAndCloseBody(resp.Body)
		return nil, newErrResponseBodyTooLarge(f.limit)
	}

	resp.Body = &maxBytesReader{
		rc:    http.MaxBytesReader(nil, resp.Body, f.limit),
		limit: f.limit,
	}

	return resp, nil
}
