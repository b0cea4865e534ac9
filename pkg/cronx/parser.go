package cronx

import "github.com/robfig/cron/v3"

// StandardParser 저장된 검색의 실행 주기(schedules[].time_spec)를 해석하는 파서를 반환합니다.
//
// 초 단위를 포함하는 6필드 형식만 받으며 분 단위 5필드 형식은 거부합니다.
//   - 필드 순서: [초] [분] [시] [일] [월] [요일]
//   - Descriptor: @daily, @weekly, @every <duration> 등
//
// 예시:
//   - "0 0 9 * * MON-FRI" : 평일 오전 9시
//   - "@every 30m"        : 30분 간격
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}
