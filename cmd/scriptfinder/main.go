package main

import (
	"os"
)

// @title ScriptFinder API
// @version 1.0.0
// @description 파일 이름으로 스크립트를 찾아 프로젝트로 가져오는 ScriptFinder의 REST API입니다.
// @description
// @description ## 주요 기능
// @description - 로컬 검색 경로와 원격 저장소에서 스크립트 검색 (비동기 세션)
// @description - 검색 결과를 {import.project_dir}/Assets/{import.folder} 폴더로 가져오기
// @description
// @description ## 접근 제한
// @description 인증이 없으므로 기본적으로 루프백 주소(api.listen_host=127.0.0.1)에만 바인딩됩니다.
// @description 가져오기는 search.local_paths 하위의 파일과 remote.sources에 설정된 호스트의 URL만 허용합니다.

// @license.name MIT

// @host localhost:2443
// @BasePath /

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
