// Package service 애플리케이션을 구성하는 백그라운드 서비스의 공통 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service main에서 일괄적으로 시작하고 종료하는 백그라운드 서비스입니다.
//
// Start는 서비스의 고루틴을 시작한 뒤 즉시 반환합니다.
// 호출자는 Start 호출 전에 serviceStopWG.Add(1)을 호출해야 하며, 서비스는 완전히 종료되는 시점(또는 시작에 실패한 시점)에 Done을 호출합니다.
// serviceStopCtx가 취소되면 서비스는 진행 중인 작업을 정리하고 종료합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
