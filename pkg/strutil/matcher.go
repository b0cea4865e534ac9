// Package strutil 파일 이름 검색에 사용하는 문자열 매칭 유틸리티를 제공합니다.
package strutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NameMatcher 파일 이름이 "*{term}*{ext}" 패턴과 일치하는지 대소문자 구분 없이 검사합니다.
//
// 제외 키워드 중 하나라도 포함된 이름은 패턴과 일치하더라도 제외됩니다. (예: "Editor", "Test")
// 생성 시점에 키워드를 정리해 두므로, 하나의 매처로 여러 파일 이름을 반복 검사할 수 있습니다.
//
// 검색어와 파일 이름은 유니코드 NFC로 정규화하여 비교합니다.
// macOS 파일 시스템은 한글 파일 이름을 NFD(자모 분리)로 돌려주므로 정규화 없이는 일치하지 않습니다.
type NameMatcher struct {
	term     string
	ext      string
	excluded []string
}

// NewNameMatcher 새로운 NameMatcher를 생성합니다.
//
// 매개변수:
//   - term: 파일 이름(확장자 제외)에 포함되어야 하는 문자열. 비어 있으면 확장자만 검사합니다.
//   - ext: 파일 확장자 (예: ".cs"). 비어 있으면 확장자를 검사하지 않습니다.
//   - excluded: 제외 키워드 목록. 공백뿐인 키워드는 무시됩니다.
func NewNameMatcher(term, ext string, excluded []string) *NameMatcher {
	m := &NameMatcher{
		term: norm.NFC.String(strings.TrimSpace(term)),
		ext:  strings.TrimSpace(ext),
	}

	for _, k := range excluded {
		if k = strings.TrimSpace(k); k != "" {
			m.excluded = append(m.excluded, norm.NFC.String(k))
		}
	}

	return m
}

// Match 파일 이름이 검색 조건을 만족하는지 검사합니다.
func (m *NameMatcher) Match(name string) bool {
	if !norm.NFC.IsNormalString(name) {
		name = norm.NFC.String(name)
	}

	if !hasSuffixFold(name, m.ext) {
		return false
	}

	stem := name[:len(name)-len(m.ext)]
	if !containsFold(stem, m.term) {
		return false
	}

	for _, k := range m.excluded {
		if containsFold(stem, k) {
			return false
		}
	}

	return true
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}

// containsFold s가 substr을 대소문자 구분 없이 포함하는지 검사합니다. 메모리를 할당하지 않습니다.
//
// 대소문자 변환 후에도 바이트 길이가 같다고 가정합니다. 터키어 İ처럼 길이가 달라지는 문자는 정확하지 않을 수 있습니다.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}

	n := len(substr)
	for i := range s {
		if i+n > len(s) {
			return false
		}
		if strings.EqualFold(s[i:i+n], substr) {
			return true
		}
	}

	return false
}
