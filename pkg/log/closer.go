package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer Setup이 생성한 로그 파일들의 리소스 해제를 통합 관리합니다.
//
// Close는 여러 번 호출해도 안전하며, 파일을 닫기 전에 levelRouter를 먼저 닫아
// 이미 닫힌 파일에 쓰기를 시도하는 일이 없도록 합니다.
type closer struct {
	closers []io.Closer
	router  *levelRouter

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.router != nil {
		_ = c.router.Close()
	}

	var errs error
	for _, cl := range c.closers {
		if cl == nil {
			continue
		}
		if s, ok := cl.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := cl.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
