package cmd

import (
	"fmt"

	"github.com/rclone/rclone/fs/config/obscure"
	"github.com/spf13/cobra"
)

// obscureCmd represents the obscure command
var obscureCmd = &cobra.Command{
	Use:   "obscure [plaintext]",
	Short: "Obscure a password for safe storage in config files",
	Long: `Obscure passwords and secrets for storage in config files.

This command turns a plaintext password (FTP credentials, SMTP password)
into an obscured string that can be stored in ftpsnap.yaml without the
plaintext being readable at a glance.

Obscuring is reversible and should not be considered real encryption; it
only protects against accidental exposure of the config file.

Examples:
  # Obscure an FTP password
  ftpsnap obscure "my-ftp-password"

  # Use the output in ftpsnap.yaml
  profiles:
    - name: "nas"
      username: "backup"
      password: "4Yp8m2qK8nJ5vL9wX..."
      password_obscured: true`,
	Args: cobra.ExactArgs(1),
	Run:  runObscure,
}

func init() {
	rootCmd.AddCommand(obscureCmd)
}

func runObscure(cmd *cobra.Command, args []string) {
	password := args[0]

	obscured := obscure.MustObscure(password)
	fmt.Printf("🔒 Obscured:  %s\n\n", obscured)
	fmt.Println("📋 Add to ftpsnap.yaml:")
	fmt.Printf("  password: \"%s\"\n", obscured)
	fmt.Println("  password_obscured: true")
}
