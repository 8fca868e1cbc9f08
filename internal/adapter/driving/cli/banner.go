package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/diillson/weekly-usage-report/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner() {
	banner := `
 _   _                        ____                       _
| | | |___  __ _  __ _  ___  |  _ \ ___ _ __   ___  _ __| |_
| | | / __|/ _' |/ _' |/ _ \ | |_) / _ \ '_ \ / _ \| '__| __|
| |_| \__ \ (_| | (_| |  __/ |  _ <  __/ |_) | (_) | |  | |_
 \___/|___/\__,_|\__, |\___| |_| \_\___| .__/ \___/|_|   \__|
                 |___/                 |_|
`
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(fmt.Sprintf("Weekly Usage Report CLI (v%s)", version.FormatVersion())))
}
