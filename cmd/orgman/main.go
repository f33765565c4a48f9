// orgman は部署・職位・従業員・プロジェクトを管理するREST APIサーバー。
//
//	orgman [serve|worker|migrate [up|down N|version]|healthcheck]
package main

import (
	"fmt"
	"os"

	"github.com/hitoshi/orgman/internal/app"
)

func main() {
	if err := app.Run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "orgman: %v\n", err)
		os.Exit(1)
	}
}
