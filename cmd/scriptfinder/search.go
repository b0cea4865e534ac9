package main

import (
	"context"
	"encoding/json"
	"os/signal"
	"syscall"

	apperrors "github.com/darkkaiser/scriptfinder/internal/pkg/errors"
	"github.com/darkkaiser/scriptfinder/internal/service/search"
	"github.com/spf13/cobra"
)

type searchOptions struct {
	asJSON bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search <term>",
		Short: "로컬 디렉터리와 원격 저장소에서 스크립트를 검색합니다",
		Long: `파일 이름에 검색어가 포함된 스크립트를 검색합니다. (대소문자 구분 없음)

검색이 끝나면 결과를 출력합니다. 검색 도중 Ctrl+C를 누르면 검색을 취소하고 그때까지의 결과를 출력합니다.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			snap, err := runSearch(ctx, newApp(opts.appConfig), args[0])
			if err != nil {
				return err
			}

			if so.asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}

			printSnapshot(cmd.OutOrStdout(), snap)

			return nil
		},
	}

	cmd.Flags().BoolVar(&so.asJSON, "json", false, "결과를 JSON 형식으로 출력")

	return cmd
}

// runSearch 작업 실행기와 검색 서비스를 시작하고, 검색 세션 하나가 끝날 때까지 대기합니다.
// ctx가 먼저 취소되면 세션을 취소하고 그때까지의 결과를 반환합니다.
func runSearch(ctx context.Context, a *app, term string) (search.Snapshot, error) {
	if err := a.start(context.Background(), a.runner, a.search); err != nil {
		return search.Snapshot{}, err
	}
	defer a.stop()

	sess, err := a.search.Search(ctx, term)
	if err != nil {
		return search.Snapshot{}, err
	}

	select {
	case <-sess.Done():
	case <-ctx.Done():
		if err := a.search.Cancel(context.Background(), sess.ID()); err != nil && !apperrors.Is(err, apperrors.NotFound) {
			return sess.Snapshot(), err
		}
	}

	return sess.Snapshot(), nil
}
