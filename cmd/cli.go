package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oarkflow/clipboard"

	"github.com/oarkflow/secretshare"
)

var engine = secretshare.New()

// Execute runs the cobra command tree.
func Execute(args []string) {
	settings, err := secretshare.LoadSettings()
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	var rootCmd = &cobra.Command{
		Use:   "secretshare",
		Short: "Split secrets into threshold shares and reconstruct them",
	}

	var parts, threshold int
	var copyOut bool
	var emails []string

	var splitCmd = &cobra.Command{
		Use:   "split",
		Short: "Split a secret into shares",
		Run: func(cmd *cobra.Command, args []string) {
			secret, err := promptSecret("Enter secret: ")
			if err != nil {
				fail(err)
			}
			shares, err := engine.Split(secret, parts, threshold)
			if err != nil {
				fail(err)
			}
			fmt.Printf("Secret split into %d shares, any %d reconstruct it.\n", parts, threshold)
			fmt.Println("Store each share separately and securely!")
			for _, s := range shares {
				fmt.Println(secretshare.EncodeShare(s))
			}
			if copyOut {
				if err := clipboard.WriteAll(secretshare.EncodeShares(shares)); err != nil {
					fmt.Println("clipboard error:", err)
				} else {
					fmt.Println("shares copied to clipboard")
				}
			}
			if len(emails) > 0 {
				if err := secretshare.SendShares(settings, emails, shares, threshold); err != nil {
					fail(err)
				}
				fmt.Printf("Shares sent to %d custodians.\n", len(emails))
			}
		},
	}
	splitCmd.Flags().IntVarP(&parts, "parts", "n", settings.Parts, "total number of shares")
	splitCmd.Flags().IntVarP(&threshold, "threshold", "k", settings.Threshold, "shares required to reconstruct")
	splitCmd.Flags().BoolVar(&copyOut, "copy", false, "copy all shares to the clipboard")
	splitCmd.Flags().StringSliceVar(&emails, "email", nil, "email one share to each address via SES")

	var copySecret bool
	var recoverCmd = &cobra.Command{
		Use:   "recover [file]",
		Short: "Reconstruct a secret from shares (from a file or stdin)",
		Args:  cobra.MaximumNArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var text string
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					fail(err)
				}
				text = string(data)
			} else {
				fmt.Println("Paste shares, one per line, then EOF (Ctrl-D):")
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					fail(err)
				}
				text = string(data)
			}
			shares, err := secretshare.ParseShares(text)
			if err != nil {
				fail(err)
			}
			secret, err := engine.ReconstructText(shares)
			if err != nil {
				fail(err)
			}
			if copySecret {
				if err := clipboard.WriteAll(secret); err != nil {
					fmt.Println("clipboard error:", err)
				} else {
					fmt.Println("secret copied to clipboard")
				}
				return
			}
			fmt.Println(secret)
		},
	}
	recoverCmd.Flags().BoolVar(&copySecret, "copy", false, "copy the secret to the clipboard instead of printing it")

	var keepCmd = &cobra.Command{
		Use:   "keep [name]",
		Short: "Split a secret and store the shares in the encrypted keeper",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			secret, err := promptSecret("Enter secret: ")
			if err != nil {
				fail(err)
			}
			shares, err := engine.Split(secret, parts, threshold)
			if err != nil {
				fail(err)
			}
			if err := keeper.Keep(args[0], shares, threshold); err != nil {
				fail(err)
			}
			fmt.Printf("Stored %d shares under %q (threshold %d).\n", len(shares), args[0], threshold)
		},
	}
	keepCmd.Flags().IntVarP(&parts, "parts", "n", settings.Parts, "total number of shares")
	keepCmd.Flags().IntVarP(&threshold, "threshold", "k", settings.Threshold, "shares required to reconstruct")

	var retrieveCmd = &cobra.Command{
		Use:   "retrieve [name]",
		Short: "Print a stored share bundle",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			bundle, err := keeper.Retrieve(args[0])
			if err != nil {
				fail(err)
			}
			fmt.Printf("%d shares, threshold %d, created %s\n",
				len(bundle.Shares), bundle.Threshold, bundle.CreatedAt.Format("2006-01-02 15:04:05"))
			for _, s := range bundle.Shares {
				fmt.Println(s)
			}
		},
	}

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored share bundles",
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			for _, name := range keeper.List() {
				fmt.Println(name)
			}
		},
	}

	var deleteCmd = &cobra.Command{
		Use:   "delete [name]",
		Short: "Delete a stored share bundle",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			if err := keeper.Delete(args[0]); err != nil {
				fail(err)
			}
			fmt.Println("Bundle deleted:", args[0])
		},
	}

	var exportCmd = &cobra.Command{
		Use:   "export",
		Short: "Export keeper contents as JSON",
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			data, err := keeper.Export()
			if err != nil {
				fail(err)
			}
			fmt.Println(data)
		},
	}

	var importCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Import keeper contents from a JSON export",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			keeper := unlockKeeper()
			data, err := os.ReadFile(args[0])
			if err != nil {
				fail(err)
			}
			if err := keeper.Import(string(data)); err != nil {
				fail(err)
			}
			fmt.Println("Keeper imported.")
		},
	}

	var serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server with the web UI",
		Run: func(cmd *cobra.Command, args []string) {
			secretshare.StartHTTPServer(engine, settings)
		},
	}

	rootCmd.AddCommand(splitCmd, recoverCmd, keepCmd, retrieveCmd, listCmd, deleteCmd, exportCmd, importCmd, serveCmd)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// promptSecret reads a secret from the terminal without echoing it.
func promptSecret(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return nil, err
	}
	return secret, nil
}

// unlockKeeper prompts for the master password and opens the default
// keeper.
func unlockKeeper() *secretshare.Keeper {
	pw, err := promptSecret("Master password: ")
	if err != nil {
		fail(err)
	}
	keeper, err := secretshare.OpenDefaultKeeper(pw)
	if err != nil {
		fail(err)
	}
	return keeper
}

func fail(err error) {
	fmt.Println("Error:", err)
	os.Exit(1)
}
