// Package idgen 시간 순으로 정렬 가능한 짧은 문자열 식별자를 생성합니다.
package idgen

import (
	"sync/atomic"
	"time"
)

// base62Chars ASCII 순서와 일치하므로 생성된 ID의 사전순 정렬이 생성 시간 순서와 대략 일치합니다.
const base62Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

const (
	base62Len = int64(len(base62Chars))

	// seqLength 시퀀스 부분의 고정 길이입니다.
	seqLength = 6
)

// Generator 검색 세션 등의 고유 식별자를 생성합니다. 여러 고루틴에서 동시에 사용해도 안전합니다.
//
// ID 구조: [나노초 타임스탬프(Base62)][시퀀스(Base62, 6자리 고정)]
// 예: "2Xk9pL3m000001"
type Generator struct {
	counter atomic.Uint32

	// now 테스트에서 시각을 고정하기 위해 사용합니다.
	now func() time.Time
}

// New 새로운 식별자를 생성합니다.
func (g *Generator) New() string {
	now := time.Now
	if g.now != nil {
		now = g.now
	}

	b := make([]byte, 0, 18)
	b = appendBase62(b, now().UnixNano())
	b = appendBase62Padded(b, int64(g.counter.Add(1)), seqLength)

	return string(b)
}

// appendBase62 num을 Base62로 인코딩하여 dst 뒤에 추가합니다. 음수는 절댓값으로 처리합니다.
func appendBase62(dst []byte, num int64) []byte {
	return appendBase62Padded(dst, num, 1)
}

// appendBase62Padded num을 Base62로 인코딩하되, length보다 짧으면 앞을 '0'으로 채웁니다.
// length보다 길면 잘라내지 않습니다.
func appendBase62Padded(dst []byte, num int64, length int) []byte {
	if num < 0 {
		num = -num
	}

	var temp [20]byte
	i := len(temp)
	for num > 0 {
		i--
		temp[i] = base62Chars[num%base62Len]
		num /= base62Len
	}

	for pad := length - (len(temp) - i); pad > 0; pad-- {
		dst = append(dst, base62Chars[0])
	}

	return append(dst, temp[i:]...)
}
