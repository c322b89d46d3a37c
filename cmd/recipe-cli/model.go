package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"recipe-server/client"
	"recipe-server/entities"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true).
			PaddingLeft(2)

	normalStyle = lipgloss.NewStyle().
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			PaddingLeft(4)
)

const requestTimeout = 10 * time.Second

// recipeAPI is the part of client.Client the TUI needs.
type recipeAPI interface {
	Signup(ctx context.Context, username, password string) (*entities.UserView, error)
	Login(ctx context.Context, username, password string) (*entities.UserView, error)
	Logout(ctx context.Context) error
	Recipes(ctx context.Context) ([]entities.RecipeView, error)
	CreateRecipe(ctx context.Context, title, instructions string, minutes int) (*entities.RecipeView, error)
}

type step int

const (
	stepEnteringUsername step = iota
	stepEnteringPassword
	stepLoggingIn
	stepListingRecipes
	stepEnteringTitle
	stepEnteringMinutes
	stepEnteringInstructions
	stepSavingRecipe
)

type model struct {
	api          recipeAPI
	signup       bool
	step         step
	username     string
	password     string
	user         *entities.UserView
	recipes      []entities.RecipeView
	cursor       int
	draftTitle   string
	draftMinutes int
	currentInput string
	message      string
	quitting     bool
}

type loggedInMsg struct{ user *entities.UserView }
type recipesLoadedMsg []entities.RecipeView
type recipeSavedMsg struct{ recipe *entities.RecipeView }
type loggedOutMsg struct{}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(api recipeAPI, signup bool) model {
	return model{api: api, signup: signup, step: stepEnteringUsername}
}

func (m model) Init() tea.Cmd {
	return nil
}

func authenticate(api recipeAPI, username, password string, signup bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		call := api.Login
		if signup {
			call = api.Signup
		}
		user, err := call(ctx, username, password)
		if err != nil {
			if errors.Is(err, client.ErrUnauthorized) {
				return errMsg{fmt.Errorf("invalid username or password")}
			}
			return errMsg{err}
		}
		return loggedInMsg{user: user}
	}
}

func loadRecipes(api recipeAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		recipes, err := api.Recipes(ctx)
		if err != nil {
			return errMsg{fmt.Errorf("failed to load recipes: %w", err)}
		}
		return recipesLoadedMsg(recipes)
	}
}

func saveRecipe(api recipeAPI, title, instructions string, minutes int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		recipe, err := api.CreateRecipe(ctx, title, instructions, minutes)
		if err != nil {
			return errMsg{err}
		}
		return recipeSavedMsg{recipe: recipe}
	}
}

func logout(api recipeAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := api.Logout(ctx); err != nil {
			return errMsg{err}
		}
		return loggedOutMsg{}
	}
}

func (m model) typing() bool {
	switch m.step {
	case stepEnteringUsername, stepEnteringPassword, stepEnteringTitle, stepEnteringMinutes, stepEnteringInstructions:
		return true
	}
	return false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case loggedInMsg:
		m.user = msg.user
		m.password = ""
		m.step = stepListingRecipes
		m.message = successStyle.Render("✓ Logged in as " + msg.user.Username)
		return m, loadRecipes(m.api)

	case recipesLoadedMsg:
		m.recipes = []entities.RecipeView(msg)
		if m.cursor >= len(m.recipes) {
			m.cursor = max(len(m.recipes)-1, 0)
		}

	case recipeSavedMsg:
		m.step = stepListingRecipes
		m.message = successStyle.Render("✓ Saved " + msg.recipe.Title)
		return m, loadRecipes(m.api)

	case loggedOutMsg:
		m.quitting = true
		return m, tea.Quit

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		switch m.step {
		case stepLoggingIn:
			m.step = stepEnteringUsername
		case stepSavingRecipe:
			m.step = stepEnteringTitle
		}
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyEsc:
		if m.step == stepEnteringTitle || m.step == stepEnteringMinutes || m.step == stepEnteringInstructions {
			m.currentInput = ""
			m.step = stepListingRecipes
		}
		return m, nil

	case tea.KeyBackspace:
		if len(m.currentInput) > 0 {
			r := []rune(m.currentInput)
			m.currentInput = string(r[:len(r)-1])
		}
		return m, nil

	case tea.KeySpace:
		if m.typing() {
			m.currentInput += " "
		}
		return m, nil

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		if m.step == stepListingRecipes && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case tea.KeyDown:
		if m.step == stepListingRecipes && m.cursor < len(m.recipes)-1 {
			m.cursor++
		}
		return m, nil

	case tea.KeyRunes:
		if m.typing() {
			m.currentInput += string(msg.Runes)
			return m, nil
		}
	}

	if m.step != stepListingRecipes {
		return m, nil
	}
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "j":
		if m.cursor < len(m.recipes)-1 {
			m.cursor++
		}
	case "n":
		m.message = ""
		m.step = stepEnteringTitle
	case "r":
		return m, loadRecipes(m.api)
	case "l":
		return m, logout(m.api)
	}
	return m, nil
}

func (m model) submit() (tea.Model, tea.Cmd) {
	input := m.currentInput
	switch m.step {
	case stepEnteringUsername:
		if strings.TrimSpace(input) != "" {
			m.username = strings.TrimSpace(input)
			m.currentInput = ""
			m.step = stepEnteringPassword
		}

	case stepEnteringPassword:
		if input != "" {
			m.password = input
			m.currentInput = ""
			m.step = stepLoggingIn
			m.message = "Logging in..."
			return m, authenticate(m.api, m.username, m.password, m.signup)
		}

	case stepEnteringTitle:
		if strings.TrimSpace(input) != "" {
			m.draftTitle = input
			m.currentInput = ""
			m.step = stepEnteringMinutes
		}

	case stepEnteringMinutes:
		minutes, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || minutes < 0 {
			m.message = errorStyle.Render("✗ minutes must be a whole number")
			return m, nil
		}
		m.draftMinutes = minutes
		m.currentInput = ""
		m.message = ""
		m.step = stepEnteringInstructions

	case stepEnteringInstructions:
		m.currentInput = ""
		m.step = stepSavingRecipe
		m.message = "Saving recipe..."
		return m, saveRecipe(m.api, m.draftTitle, input, m.draftMinutes)
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Recipe Box\n\n"))

	switch m.step {
	case stepEnteringUsername:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Enter your username:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Enter your password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len([]rune(m.currentInput)))))
		s.WriteString("\n\nPress Enter\n")

	case stepLoggingIn, stepSavingRecipe:
		s.WriteString(m.message + "\n")

	case stepListingRecipes:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		if len(m.recipes) == 0 {
			s.WriteString("No recipes yet.\n")
		}
		for i, r := range m.recipes {
			cursor := " "
			style := normalStyle
			if m.cursor == i {
				cursor = ">"
				style = selectedStyle
			}
			author := "unknown"
			if r.User != nil {
				author = r.User.Username
			}
			s.WriteString(fmt.Sprintf("%s %s (%d min, by %s)\n", cursor, style.Render(r.Title), r.MinutesToComplete, author))
			if m.cursor == i {
				s.WriteString(detailStyle.Render(r.Instructions) + "\n")
			}
		}
		s.WriteString("\nUse ↑/↓, n new recipe, r refresh, l log out, q quit\n")

	case stepEnteringTitle:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Recipe title:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter, Esc to cancel\n")

	case stepEnteringMinutes:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Minutes to complete:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter, Esc to cancel\n")

	case stepEnteringInstructions:
		s.WriteString(promptStyle.Render(fmt.Sprintf("Instructions (at least %d characters):\n", entities.MinInstructionsLength)))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString(fmt.Sprintf("\n\n%d characters. Press Enter to save, Esc to cancel\n", len([]rune(m.currentInput))))
	}

	return s.String()
}
