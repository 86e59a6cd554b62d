package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/automationz/ftpsnap/internal/encoder"
	"github.com/automationz/ftpsnap/internal/utils"
)

var decryptOutputPath string

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [file.age]",
	Short: "Decrypt a snapshot file encrypted with encryption_key",
	Long: `Decrypt a single .age file from an encrypted snapshot.

The encryption key is taken from the config file (or the
BACKUP_ENCRYPTION_KEY environment variable), the same key the daemon used
to encrypt the snapshot.

Examples:
  # Restore a file next to the encrypted one
  ftpsnap decrypt backups/docs/20260828_020000/report.pdf.age

  # Restore to a specific path
  ftpsnap decrypt report.pdf.age -o /tmp/report.pdf`,
	Args: cobra.ExactArgs(1),
	Run:  runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)
	decryptCmd.Flags().StringVarP(&decryptOutputPath, "output", "o", "", "Output file path (default: input without the .age suffix)")
}

func runDecrypt(cmd *cobra.Command, args []string) {
	inputPath := args[0]

	loadEnvIfExists()

	cfg, err := loadConfigOrFail()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if !cfg.IsEncryptEnabled() {
		log.Fatalf("No encryption_key configured in %s", cfgFile)
	}

	outputPath := decryptOutputPath
	if outputPath == "" {
		if !strings.HasSuffix(inputPath, ".age") {
			log.Fatalf("Input %s has no .age suffix; use -o to name the output", inputPath)
		}
		outputPath = strings.TrimSuffix(inputPath, ".age")
	}

	if utils.FileExists(outputPath) {
		log.Fatalf("Output file already exists: %s", outputPath)
	}

	enc, err := encoder.NewEncryptor(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("Error initializing encryption: %v", err)
	}

	if err := enc.Decrypt(inputPath, outputPath); err != nil {
		log.Fatalf("Decrypt failed: %v", err)
	}

	fmt.Printf("✅ Decrypted: %s\n", outputPath)
}
