package style

import (
	"github.com/charmbracelet/lipgloss"

	"kanboard/internal/infrastructure/config"
)

var (
	ColumnStyle        lipgloss.Style
	FocusedColumnStyle lipgloss.Style
	TrashColumnStyle   lipgloss.Style
	ColumnTitleStyle   lipgloss.Style
	CardStyle          lipgloss.Style
	SelectedCardStyle  lipgloss.Style
	CarriedCardStyle   lipgloss.Style
	HelpStyle          lipgloss.Style
	StatusStyle        lipgloss.Style
)

func init() {
	InitStyles(config.Default(""))
}

// InitStyles initializes the styles from config
func InitStyles(cfg *config.Config) {
	styles := cfg.TUI.Styles

	ColumnStyle = columnStyle(styles.Column)
	FocusedColumnStyle = columnStyle(styles.FocusedColumn)
	TrashColumnStyle = columnStyle(styles.TrashColumn)

	ColumnTitleStyle = textStyle(styles.ColumnTitle)
	CardStyle = textStyle(styles.Card)
	SelectedCardStyle = textStyle(styles.SelectedCard)
	CarriedCardStyle = textStyle(styles.CarriedCard)

	HelpStyle = lipgloss.NewStyle().
		Padding(styles.Help.PaddingVertical, 0, 0, styles.Help.PaddingHorizontal)
	if styles.Help.Foreground != "" {
		HelpStyle = HelpStyle.Foreground(lipgloss.Color(styles.Help.Foreground))
	}

	StatusStyle = textStyle(styles.Status)
}

// ColumnTint colors a column title with a configured column color
func ColumnTint(color string) lipgloss.Style {
	if color == "" {
		return ColumnTitleStyle
	}
	return ColumnTitleStyle.Foreground(lipgloss.Color(color))
}

func columnStyle(c config.ColumnStyle) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(c.PaddingVertical, c.PaddingHorizontal).
		Border(getBorder(c.BorderStyle)).
		BorderForeground(lipgloss.Color(c.BorderColor))
}

func textStyle(t config.TextStyle) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(t.PaddingVertical, t.PaddingHorizontal)
	if t.Foreground != "" {
		s = s.Foreground(lipgloss.Color(t.Foreground))
	}
	if t.Background != "" {
		s = s.Background(lipgloss.Color(t.Background))
	}
	if t.Bold {
		s = s.Bold(true)
	}
	if t.Italic {
		s = s.Italic(true)
	}
	if t.Align != "" {
		s = s.Align(getAlign(t.Align))
	}
	return s
}

// getBorder returns the border style based on the name
func getBorder(name string) lipgloss.Border {
	switch name {
	case "rounded":
		return lipgloss.RoundedBorder()
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}

// getAlign returns the alignment based on the name
func getAlign(name string) lipgloss.Position {
	switch name {
	case "left":
		return lipgloss.Left
	case "center":
		return lipgloss.Center
	case "right":
		return lipgloss.Right
	default:
		return lipgloss.Center
	}
}
