// Package coroutine 외부에서 주기적으로 호출되는 Tick에 의해 구동되는 협력형(Cooperative) 작업 스케줄러를 제공합니다.
//
// 스케줄러는 선점형 스레드를 사용하지 않습니다. 각 작업(Task)은 한 번에 한 단계씩만 진행되며,
// 단계 사이에서 "대기 조건(Wait)"을 반환(yield)하여 제어권을 스케줄러에 돌려줍니다.
// 스케줄러는 매 Tick마다 대기 조건이 충족된 작업만 한 단계씩 진행시킵니다.
//
// # 기본 사용법
//
//	s := coroutine.New()
//
//	t, err := s.Start(coroutine.FromSeq("download", func(yield func(any) bool) {
//	    op := coroutine.Go(ctx, fetch)
//	    if !yield(coroutine.Await(op)) {
//	        return
//	    }
//	    if !yield(coroutine.Delay(2 * time.Second)) {
//	        return
//	    }
//	    // ...
//	}), owner)
//
//	// 호스트 루프에서 주기적으로 호출합니다.
//	s.Tick(16 * time.Millisecond)
//
// # 대기 조건
//
// 작업이 반환할 수 있는 값은 다음과 같습니다:
//   - nil, Immediate(): 다음 Tick에 즉시 진행
//   - Delay(d): 누적 경과 시간이 d를 "초과"하는 첫 Tick에 진행 (경과 시간이 정확히 d인 경우는 진행하지 않음)
//   - While(f), Until(f), KeepWaiter: 외부 플래그가 대기 해제를 알릴 때 진행
//   - Join(t), *Task: 하위 작업이 끝난 다음 Tick에 진행
//   - Await(op), AsyncOp: 외부 비동기 작업이 완료되면 진행
//   - error: 작업 실패로 간주하여 즉시 종료
//
// 그 외의 값은 "지원하지 않는 yield 값"으로 진단 로그를 남기고, 해당 작업은 즉시 진행 가능한 상태로 처리됩니다.
//
// # 동시성
//
// Scheduler는 단일 스레드에서만 사용하도록 설계되었으며 내부적으로 어떠한 락도 사용하지 않습니다.
// Start, StopTask, StopAllForOwner, Tick은 모두 같은 논리적 스레드(예: 호스트의 이벤트 루프)에서 호출해야 합니다.
// 작업의 단계 안에서 다른 작업을 시작하거나 중지하는 것은 허용됩니다.
package coroutine
