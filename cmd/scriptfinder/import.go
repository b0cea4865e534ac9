package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/darkkaiser/scriptfinder/internal/service/importer"
	"github.com/spf13/cobra"
)

type importOptions struct {
	name string
}

func newImportCmd(opts *rootOptions) *cobra.Command {
	imo := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import <path|url>",
		Short: "스크립트 파일을 Unity 프로젝트의 가져오기 폴더로 복사합니다",
		Long: `로컬 파일 경로 또는 원격 URL의 스크립트를 {import.project_dir}/Assets/{import.folder} 폴더로 복사합니다.

같은 이름의 파일이 이미 존재하면 덮어쓰지 않고 실패합니다. --name으로 다른 이름을 지정할 수 있습니다.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			result, err := runImport(ctx, newApp(opts.appConfig), args[0], imo.name)
			if err != nil {
				return err
			}

			printImportResult(cmd.OutOrStdout(), result)

			return nil
		},
	}

	cmd.Flags().StringVarP(&imo.name, "name", "n", "", "저장할 파일 이름 (기본값: 원본 파일 이름)")

	return cmd
}

// runImport 작업 실행기를 시작하고 파일 하나를 가져옵니다.
func runImport(ctx context.Context, a *app, src, name string) (importer.Result, error) {
	if err := a.start(context.Background(), a.runner); err != nil {
		return importer.Result{}, err
	}
	defer a.stop()

	return a.importer.Import(ctx, src, name)
}
