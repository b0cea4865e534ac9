package coroutine

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
)

// Identifier 자신의 고유 식별자를 직접 제공하는 Owner가 구현하는 인터페이스입니다.
//
// 이 인터페이스를 구현하지 않은 Owner는 포인터 주소(참조 타입) 또는 값의 문자열 표현으로 식별됩니다.
type Identifier interface {
	OwnerID() string
}

// OwnerKey 작업을 시작한 주체(Owner)를 식별하는 키입니다.
//
// ID만으로는 서로 다른 타입의 Owner끼리 식별자가 겹칠 수 있으므로(예: 같은 문자열 ID를 쓰는 두 타입),
// Owner의 타입 이름(Type)을 함께 사용하여 구분합니다.
type OwnerKey struct {
	ID   string
	Type string
}

// String 로그 출력용 문자열 표현을 반환합니다.
func (k OwnerKey) String() string {
	return k.Type + "#" + k.ID
}

// OwnerOf 임의의 Owner 값으로부터 OwnerKey를 계산합니다.
//
// 식별 규칙:
//   - OwnerKey: 그대로 사용합니다.
//   - Identifier 구현체: OwnerID()의 반환값을 ID로 사용합니다.
//   - 포인터, 맵, 채널, 함수: 참조 주소를 ID로 사용합니다.
//   - 그 외의 값: fmt 문자열 표현을 ID로 사용합니다.
func OwnerOf(owner any) OwnerKey {
	switch o := owner.(type) {
	case OwnerKey:
		return o
	case Identifier:
		return OwnerKey{ID: o.OwnerID(), Type: typeName(owner)}
	}

	v := reflect.ValueOf(owner)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return OwnerKey{ID: fmt.Sprintf("%#x", v.Pointer()), Type: typeName(owner)}
	}

	return OwnerKey{ID: fmt.Sprint(owner), Type: typeName(owner)}
}

// NewOwner 자연스러운 식별자가 없는 호출자를 위해 무작위 UUID 기반의 OwnerKey를 발급합니다.
func NewOwner() OwnerKey {
	return OwnerKey{ID: uuid.NewString(), Type: "coroutine.Owner"}
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}

// Key 레지스트리에서 작업 슬롯을 식별하는 키입니다. (Owner ID, Owner 타입, 작업 메서드 이름)
type Key struct {
	Owner  OwnerKey
	Method string
}

// KeyOf Owner와 작업 이름으로 Key를 생성합니다.
func KeyOf(owner any, method string) Key {
	return Key{Owner: OwnerOf(owner), Method: method}
}

// String 로그 출력용 문자열 표현을 반환합니다.
func (k Key) String() string {
	return k.Owner.String() + "." + k.Method
}
