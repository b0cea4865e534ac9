package cronx

import (
	"fmt"
	"strings"
	"time"
)

// Validate 표현식이 StandardParser로 해석 가능한지 검증합니다. 앞뒤 공백은 무시합니다.
func Validate(spec string) error {
	if _, err := StandardParser().Parse(strings.TrimSpace(spec)); err != nil {
		return fmt.Errorf("Cron 표현식 파싱 실패 (spec=%q): %w", spec, err)
	}

	return nil
}

// NextRun from 이후 표현식이 처음으로 실행되는 시각을 반환합니다.
func NextRun(spec string, from time.Time) (time.Time, error) {
	schedule, err := StandardParser().Parse(strings.TrimSpace(spec))
	if err != nil {
		return time.Time{}, fmt.Errorf("Cron 표현식 파싱 실패 (spec=%q): %w", spec, err)
	}

	return schedule.Next(from), nil
}
