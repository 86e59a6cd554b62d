package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/automationz/ftpsnap/internal/utils"
)

var (
	initOutputPath string
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default config.yaml",
	Long: `Creates a default configuration file with examples.

By default, creates ftpsnap.yaml in the current directory.
Use -o to specify a custom output path.

Examples:
  # Create ftpsnap.yaml in current directory
  ftpsnap init

  # Create in specific location
  ftpsnap init -o /etc/ftpsnap/config.yaml`,
	Run: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", "", "Output file path (default: ./ftpsnap.yaml)")
}

func runInit(cmd *cobra.Command, args []string) {
	log.Info("Starting config initialization")

	outputPath := initOutputPath
	if outputPath == "" {
		outputPath = "./ftpsnap.yaml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		log.Fatalf("Invalid output path %s, error %v", outputPath, err)
	}

	if utils.FileExists(absPath) {
		log.Warnf("Config file already exists %s", absPath)
		fmt.Printf("⚠️  Config file already exists: %s\n", absPath)

		if !utils.AskConfirmation("Overwrite? (y/N)") {
			log.Info("User cancelled")
			fmt.Println("❌ Cancelled")
			return
		}
	}
	dir := filepath.Dir(absPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create directory %s, error %v", dir, err)
	}

	if err := os.WriteFile(absPath, []byte(configDefault), 0644); err != nil {
		log.Fatalf("Failed to write config file %s, error %v", absPath, err)
	}

	log.Infof("Config file created successfully %s", absPath)
	fmt.Printf("✅ Config file created: %s\n", absPath)

	printNextSteps(absPath)
}

func printNextSteps(configPath string) {
	fmt.Println("\n📝 Next steps:")
	fmt.Println("   1. Edit profiles and jobs:")
	fmt.Printf("      nano %s\n", configPath)
	fmt.Println("\n   2. Obscure FTP passwords (optional):")
	fmt.Println("      ftpsnap obscure yourpassword")
	fmt.Println("\n   3. Verify connectivity:")
	fmt.Println("      ftpsnap run <job> --check")
	fmt.Println("\n   4. Test a backup:")
	fmt.Println("      ftpsnap run <job>")
	fmt.Println("\n   5. Start daemon:")
	fmt.Println("      ftpsnap daemon")
}
