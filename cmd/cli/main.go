package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "easybank-cli",
		Short: "EasyBank CLI tool",
		Long:  `A command line interface for interacting with the EasyBank API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the EasyBank API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	createAccountCmd := &cobra.Command{
		Use:   "create-account <holder-name> <account-type> <currency> [initial-balance]",
		Short: "Create a new account",
		Args:  cobra.RangeArgs(3, 4),
		Run: func(cmd *cobra.Command, args []string) {
			balance := "0"
			if len(args) == 4 {
				balance = args[3]
			}
			createAccount(args[0], args[1], args[2], balance)
		},
	}

	getAccountCmd := &cobra.Command{
		Use:   "get-account <account-number>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	transferCmd := &cobra.Command{
		Use:   "transfer <source-account> <destination-account> <amount>",
		Short: "Transfer funds between accounts",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			transfer(args[0], args[1], args[2])
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history <account-number>",
		Short: "Show an account's transaction history",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0] + "/transactions")
		},
	}

	rootCmd.AddCommand(createAccountCmd, getAccountCmd, transferCmd, historyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccount(holder, accountType, currency, balance string) {
	payload := map[string]string{
		"holder_name":     holder,
		"account_type":    accountType,
		"currency":        currency,
		"initial_balance": balance,
	}
	postJSON("/api/v1/accounts", payload)
}

func transfer(source, destination, amount string) {
	payload := map[string]string{
		"destination_account_number": destination,
		"amount":                     amount,
	}
	postJSON("/api/v1/accounts/"+source+"/transfer", payload)
}

func postJSON(path string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		fmt.Printf("Failed to encode request: %v\n", err)
		os.Exit(1)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, pretty.String())
		os.Exit(1)
	}

	fmt.Println(pretty.String())
}
