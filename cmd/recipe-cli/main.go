package main

import (
	"flag"
	"fmt"
	"os"

	"recipe-server/client"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5555", "recipe server base URL")
	signup := flag.Bool("signup", false, "create a new account instead of logging in")
	flag.Parse()

	api, err := client.New(*serverURL)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(api, *signup))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
