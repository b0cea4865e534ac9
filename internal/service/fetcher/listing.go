package fetcher

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/tidwall/gjson"
	"golang.org/x/net/html/charset"
)

// Format 원격 저장소가 반환하는 목록 응답의 형식입니다.
type Format string

const (
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// DefaultJSONPath JSONPath가 지정되지 않았을 때 사용하는 gjson 경로입니다. 코드 검색 API의 응답 형태입니다.
//
//	{"items": [{"path": "Assets/Scripts/Player.cs"}, ...]}
const DefaultJSONPath = "items.#.path"

// Source 원격 스크립트 저장소 하나의 접근 정보입니다.
type Source struct {
	ID       string
	URL      string
	Format   Format
	JSONPath string
}

// RequestURL 검색어를 q 쿼리 파라미터로 추가한 목록 요청 URL을 반환합니다.
func (s Source) RequestURL(term string) (string, error) {
	u, err := url.Parse(s.URL)
	if err != nil {
		return "", apperrors.Wrapf(err, apperrors.InvalidInput, "원격 저장소('%s')의 URL 형식이 올바르지 않습니다", s.ID)
	}

	if term != "" {
		q := u.Query()
		q.Set("q", term)
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// ResolvePath 목록에서 추출한 경로를 다운로드 가능한 URL로 변환합니다.
// 이미 http(s) URL이면 그대로 반환하고, 상대 경로이면 저장소 URL 뒤에 붙입니다.
func (s Source) ResolvePath(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}

	base := s.URL
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}

	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(p, "/")
}

// FetchListing 저장소에 목록을 요청하고, 응답에서 확장자가 ext인 파일 경로들을 추출합니다.
//
// 반환값:
//   - 응답이 2xx가 아니거나 전송에 실패하면 Unavailable 타입의 에러
//   - 응답을 해석할 수 없으면 ParsingFailed 타입의 에러
func FetchListing(ctx context.Context, f Fetcher, src Source, term, ext string) ([]string, error) {
	reqURL, err := src.RequestURL(term)
	if err != nil {
		return nil, err
	}

	resp, err := Get(ctx, f, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	r, err := newUTF8Reader(resp)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "원격 저장소('%s') 응답의 문자 인코딩을 해석할 수 없습니다", src.ID)
	}

	switch src.Format {
	case FormatHTML:
		return parseHTMLListing(r, src, ext)
	case FormatJSON, "":
		return parseJSONListing(r, src, ext)
	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "원격 저장소('%s')의 응답 형식('%s')을 지원하지 않습니다", src.ID, src.Format)
	}
}

// newUTF8Reader Content-Type 헤더와 본문의 앞부분으로 인코딩을 감지하여 UTF-8로 변환하는 Reader를 반환합니다.
func newUTF8Reader(resp *http.Response) (io.Reader, error) {
	br := bufio.NewReader(resp.Body)

	// charset.NewReader는 내부 버퍼링으로 Peek한 데이터를 소비하므로 직접 감지합니다.
	peek, _ := br.Peek(1024)
	enc, name, _ := charset.DetermineEncoding(peek, resp.Header.Get("Content-Type"))
	if enc == nil || name == "utf-8" {
		return br, nil
	}

	return enc.NewDecoder().Reader(br), nil
}

func parseJSONListing(r io.Reader, src Source, ext string) ([]string, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "원격 저장소('%s')의 응답 본문을 읽을 수 없습니다", src.ID)
	}

	if !gjson.ValidBytes(body) {
		return nil, apperrors.Newf(apperrors.ParsingFailed, "원격 저장소('%s')의 응답이 올바른 JSON 형식이 아닙니다", src.ID)
	}

	jsonPath := src.JSONPath
	if jsonPath == "" {
		jsonPath = DefaultJSONPath
	}

	result := gjson.GetBytes(body, jsonPath)
	if !result.Exists() {
		return nil, apperrors.Newf(apperrors.ParsingFailed, "원격 저장소('%s')의 응답에서 경로('%s')를 찾을 수 없습니다", src.ID, jsonPath)
	}

	var paths []string
	seen := make(map[string]struct{})
	result.ForEach(func(_, value gjson.Result) bool {
		paths = appendMatching(paths, seen, value.String(), ext)
		return true
	})

	return paths, nil
}

func parseHTMLListing(r io.Reader, src Source, ext string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "원격 저장소('%s')의 HTML 응답을 해석할 수 없습니다", src.ID)
	}

	var paths []string
	seen := make(map[string]struct{})
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		paths = appendMatching(paths, seen, strings.TrimSpace(href), ext)
	})

	return paths, nil
}

// appendMatching 확장자가 일치하고 아직 추가되지 않은 경로만 추가합니다. 쿼리 문자열과 fragment는 무시합니다.
func appendMatching(paths []string, seen map[string]struct{}, p, ext string) []string {
	if p == "" {
		return paths
	}

	clean := p
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if ext != "" && !strings.EqualFold(path.Ext(clean), ext) {
		return paths
	}

	if _, dup := seen[clean]; dup {
		return paths
	}
	seen[clean] = struct{}{}

	return append(paths, clean)
}
