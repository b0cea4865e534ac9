package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/scriptfinder/internal/service/importer"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	"github.com/fatih/color"
)

var (
	nameColor    = color.New(color.Bold)
	sourceColor  = color.New(color.FgCyan)
	pathColor    = color.New(color.FgHiBlack)
	errorColor   = color.New(color.FgRed)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
)

// printSnapshot 검색 결과를 사람이 읽기 쉬운 형식으로 출력합니다.
func printSnapshot(w io.Writer, snap search.Snapshot) {
	if len(snap.Results) == 0 {
		fmt.Fprintf(w, "'%s'에 대한 검색 결과가 없습니다.\n", snap.Term)
	}

	for _, r := range snap.Results {
		fmt.Fprintf(w, "%s  %s\n    %s\n", nameColor.Sprint(r.Name), sourceColor.Sprintf("[%s]", r.Source), pathColor.Sprint(r.Path))
	}

	for _, e := range snap.Errors {
		fmt.Fprintf(w, "%s %s\n", errorColor.Sprintf("[%s]", e.Source), e.Message)
	}

	summary := fmt.Sprintf("\n%d개의 스크립트를 찾았습니다. (%s)", len(snap.Results), snap.Status)
	switch {
	case snap.Status == search.StatusCanceled:
		warnColor.Fprintln(w, summary)
	case snap.Truncated:
		warnColor.Fprintln(w, summary+" 최대 결과 수에 도달하여 검색을 중단하였습니다.")
	default:
		successColor.Fprintln(w, summary)
	}
}

// printImportResult 가져오기 결과를 출력합니다.
func printImportResult(w io.Writer, r importer.Result) {
	successColor.Fprintf(w, "가져오기 완료: %s\n", r.Target)
	fmt.Fprintf(w, "  원본: %s (%d bytes)\n", r.Source, r.Bytes)
}
