package coroutine

// bucket 같은 Key로 시작된 작업들의 목록입니다. 삽입 순서를 유지합니다.
type bucket struct {
	key   Key
	tasks []*Task
}

// registry 실행 중인 작업을 두 개의 인덱스로 관리합니다.
//
//   - buckets: Key -> 같은 Key로 시작된 작업 목록 (Identity 인덱스)
//   - owners:  Owner -> 해당 Owner가 시작한 작업들의 Key 집합 (Owner 인덱스)
//
// 종료되었거나 중지된 작업은 두 인덱스 모두에서 즉시 제거됩니다.
type registry struct {
	buckets map[Key]*bucket
	owners  map[OwnerKey]map[Key]struct{}

	// order 버킷이 생성된 순서입니다. snapshot의 순회 순서를 실행마다 동일하게 유지하기 위해 사용합니다.
	// 제거된 버킷이 남아 있을 수 있으므로, buckets에 등록된 버킷과 동일한 포인터인 경우에만 유효합니다.
	order []*bucket
}

func newRegistry() *registry {
	return &registry{
		buckets: make(map[Key]*bucket),
		owners:  make(map[OwnerKey]map[Key]struct{}),
	}
}

// register 작업을 Identity 버킷의 끝에 추가하고, Owner 인덱스에 Key를 등록합니다.
func (r *registry) register(t *Task) {
	b, exists := r.buckets[t.key]
	if !exists {
		b = &bucket{key: t.key}
		r.buckets[t.key] = b
		r.order = append(r.order, b)
	}
	b.tasks = append(b.tasks, t)

	keys, exists := r.owners[t.key.Owner]
	if !exists {
		keys = make(map[Key]struct{})
		r.owners[t.key.Owner] = keys
	}
	keys[t.key] = struct{}{}
}

// unregister 작업 하나를 버킷에서 제거합니다.
// 버킷이 비면 버킷과 Owner 인덱스의 Key를 함께 제거합니다.
func (r *registry) unregister(t *Task) {
	b, exists := r.buckets[t.key]
	if !exists {
		return
	}

	for i, task := range b.tasks {
		if task == t {
			b.tasks = append(b.tasks[:i:i], b.tasks[i+1:]...)
			break
		}
	}

	if len(b.tasks) == 0 {
		r.dropBucket(t.key)
	}
}

// stopOne Key에 해당하는 버킷 전체를 제거하고, 제거된 작업들을 반환합니다. 등록되지 않은 Key이면 nil을 반환합니다.
func (r *registry) stopOne(key Key) []*Task {
	b, exists := r.buckets[key]
	if !exists {
		return nil
	}

	r.dropBucket(key)

	return b.tasks
}

// stopAll Owner가 시작한 모든 버킷을 제거하고, 제거된 작업들을 반환합니다. 등록되지 않은 Owner이면 nil을 반환합니다.
func (r *registry) stopAll(owner OwnerKey) []*Task {
	keys, exists := r.owners[owner]
	if !exists {
		return nil
	}

	var stopped []*Task
	for _, b := range r.order {
		if _, ok := keys[b.key]; !ok || !r.live(b) {
			continue
		}
		stopped = append(stopped, b.tasks...)
		delete(r.buckets, b.key)
	}
	delete(r.owners, owner)
	r.compactOrder()

	return stopped
}

// clear 모든 버킷을 제거하고, 제거된 작업들을 등록 순서대로 반환합니다.
func (r *registry) clear() []*Task {
	var stopped []*Task
	for _, b := range r.order {
		if r.live(b) {
			stopped = append(stopped, b.tasks...)
		}
	}

	r.buckets = make(map[Key]*bucket)
	r.owners = make(map[OwnerKey]map[Key]struct{})
	r.order = nil

	return stopped
}

// snapshot 한 번의 Tick 동안 순회할 버킷 목록을 복사하여 반환합니다.
// 각 버킷의 작업 목록도 복사하므로, Tick 도중 발생하는 등록/제거는 현재 Tick의 순회에 영향을 주지 않습니다.
func (r *registry) snapshot() []bucket {
	snap := make([]bucket, 0, len(r.buckets))
	for _, b := range r.order {
		if !r.live(b) {
			continue
		}
		snap = append(snap, bucket{key: b.key, tasks: append([]*Task(nil), b.tasks...)})
	}

	return snap
}

// prune 비어 있는 버킷을 정리합니다.
func (r *registry) prune(key Key) {
	if b, exists := r.buckets[key]; exists && len(b.tasks) == 0 {
		r.dropBucket(key)
	}
}

func (r *registry) dropBucket(key Key) {
	delete(r.buckets, key)

	if keys, exists := r.owners[key.Owner]; exists {
		delete(keys, key)
		if len(keys) == 0 {
			delete(r.owners, key.Owner)
		}
	}

	r.compactOrder()
}

// compactOrder 제거된 버킷의 Key를 순서 목록에서 정리합니다.
// 매번 정리하지 않고, 제거된 Key가 살아있는 버킷 수만큼 쌓였을 때만 정리합니다.
func (r *registry) compactOrder() {
	if len(r.order) <= 2*len(r.buckets)+8 {
		return
	}

	order := make([]*bucket, 0, len(r.buckets))
	for _, b := range r.order {
		if r.live(b) {
			order = append(order, b)
		}
	}
	r.order = order
}

// live 버킷이 아직 Identity 인덱스에 등록되어 있는지 여부를 반환합니다.
func (r *registry) live(b *bucket) bool {
	return r.buckets[b.key] == b
}

// len 등록된 모든 작업의 수를 반환합니다.
func (r *registry) len() int {
	n := 0
	for _, b := range r.buckets {
		n += len(b.tasks)
	}
	return n
}

// tasksOf Owner가 시작한 작업들을 등록 순서대로 반환합니다.
func (r *registry) tasksOf(owner OwnerKey) []*Task {
	keys, exists := r.owners[owner]
	if !exists {
		return nil
	}

	var tasks []*Task
	for _, b := range r.order {
		if _, ok := keys[b.key]; ok && r.live(b) {
			tasks = append(tasks, b.tasks...)
		}
	}

	return tasks
}
