package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultListenHost api.listen_host가 비어 있을 때 바인딩할 주소. 로컬에서만 접근할 수 있습니다.
	DefaultListenHost = "127.0.0.1"

	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 시간
	// 파일 가져오기는 원격 다운로드를 포함하므로 여유 있게 설정합니다.
	DefaultRequestTimeout = 60 * time.Second

	// DefaultReadTimeout 요청 본문 읽기 제한 시간
	DefaultReadTimeout = 15 * time.Second

	// DefaultReadHeaderTimeout HTTP 헤더 읽기 최대 대기 시간 (Slowloris 방어)
	DefaultReadHeaderTimeout = 10 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한 시간
	DefaultWriteTimeout = 75 * time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한 시간
	DefaultIdleTimeout = 120 * time.Second

	// DefaultShutdownTimeout Graceful Shutdown 시 최대 대기 시간
	DefaultShutdownTimeout = 5 * time.Second

	// DefaultMaxBodySize 요청 본문의 최대 크기
	DefaultMaxBodySize = "64K"

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 20

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 40
)
