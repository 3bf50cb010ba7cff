package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/perch/internal/config"
	"github.com/five82/perch/internal/logtail"
	"github.com/five82/perch/internal/theme"
)

const sidebarWidth = 20

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	th := m.activeTheme()
	styles := th.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader(th, styles))
	b.WriteString("\n")
	b.WriteString(m.renderBody(th, styles))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(styles))
	return styles.Background.Width(m.width).Render(b.String())
}

func (m Model) renderHeader(th theme.Theme, styles theme.Styles) string {
	parts := []string{styles.Badge("perch", th.Palette.Accent)}

	switch {
	case !m.snapshot.HasConfig && m.snapshot.LastError != nil:
		parts = append(parts, styles.ErrorText.Render(m.snapshot.LastError.Error()))
	case !m.snapshot.HasConfig:
		parts = append(parts, styles.AlertText.Render("Loading configuration..."))
	default:
		parts = append(parts,
			styles.Text.Render(themeLabel(th)),
			styles.MutedText.Render(truncateMiddle(m.configPath, 48)),
		)
		if m.snapshot.Stale() {
			parts = append(parts, styles.ErrorText.Render("reload failed: "+m.snapshot.LastError.Error()))
		} else {
			parts = append(parts, styles.SuccessText.Render("loaded "+m.snapshot.LastLoaded.Format("15:04:05")))
		}
	}
	if last := m.sidebar.LastReload(); !last.IsZero() {
		parts = append(parts, styles.MutedText.Render("reload requested "+last.Format("15:04:05")))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  "))
}

func (m Model) renderBody(th theme.Theme, styles theme.Styles) string {
	content := m.renderSection(th, styles)
	if m.sidebar.Hidden() {
		return content
	}

	cfg := m.snapshot.Config
	if m.snapshot.HasConfig && cfg.Sidebar.Horizontal() {
		tabs := m.renderTabs(styles)
		if cfg.Sidebar.Position == "bottom" {
			return lipgloss.JoinVertical(lipgloss.Left, content, tabs)
		}
		return lipgloss.JoinVertical(lipgloss.Left, tabs, content)
	}

	list := m.renderSidebar(styles)
	if m.snapshot.HasConfig && cfg.Sidebar.Position == "right" {
		return lipgloss.JoinHorizontal(lipgloss.Top, content, list)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, list, content)
}

func (m Model) sidebarLabel(s Section) string {
	label := s.String()
	if s == m.open {
		label = "● " + label
	} else {
		label = "  " + label
	}
	return label
}

func (m Model) renderSidebar(styles theme.Styles) string {
	lines := make([]string, 0, len(sections))
	for i, s := range sections {
		label := padRight(m.sidebarLabel(s), sidebarWidth-2)
		if i == m.cursor {
			lines = append(lines, styles.Selected.Render(label))
		} else {
			lines = append(lines, styles.Text.Render(label))
		}
	}
	return lipgloss.NewStyle().
		Width(sidebarWidth).
		PaddingRight(2).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderTabs(styles theme.Styles) string {
	tabs := make([]string, 0, len(sections))
	for i, s := range sections {
		label := " " + s.String() + " "
		if i == m.cursor {
			tabs = append(tabs, styles.Selected.Render(label))
		} else {
			tabs = append(tabs, styles.Text.Render(label))
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderSection(th theme.Theme, styles theme.Styles) string {
	if m.open == SectionLog {
		return m.renderLog(styles)
	}
	if !m.snapshot.HasConfig {
		return styles.MutedText.Render("Nothing loaded yet.")
	}
	cfg := m.snapshot.Config

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(m.open.String()))
	b.WriteString("\n\n")

	switch m.open {
	case SectionThemes:
		m.writeThemes(&b, th, cfg.Themes, styles)
	case SectionServers:
		writeServers(&b, cfg, styles)
	case SectionKeyboard:
		writeKeyboard(&b, cfg.Keyboard, styles)
	case SectionNotifications:
		writeNotifications(&b, cfg, styles)
	case SectionFileTransfer:
		writeFileTransfer(&b, cfg.FileTransfer, styles)
	case SectionGeneral:
		writeGeneral(&b, cfg, styles)
	}
	return b.String()
}

func (m Model) writeThemes(b *strings.Builder, active theme.Theme, themes config.Themes, styles theme.Styles) {
	for _, th := range themes.All {
		marker := "  "
		switch {
		case th == active:
			marker = "▸ "
		case th == themes.Default:
			marker = "● "
		}
		b.WriteString(styles.Text.Render(marker + padRight(themeLabel(th), 18)))
		p := th.Palette
		for _, c := range []theme.Color{p.Background, p.Text, p.Action, p.Accent, p.Alert, p.Error, p.Info, p.Success} {
			b.WriteString(styles.Swatch(c, 3))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("● configured default   ▸ previewing"))
}

func writeServers(b *strings.Builder, cfg config.Config, styles theme.Styles) {
	if len(cfg.Servers) == 0 {
		b.WriteString(styles.MutedText.Render("No servers configured."))
		return
	}
	for _, name := range cfg.Servers.Names() {
		srv := cfg.Servers[name]
		tls := "plain"
		if srv.TLS() {
			tls = "tls"
		}
		b.WriteString(styles.ActionText.Render(padRight(name, 16)))
		b.WriteString(styles.Text.Render(fmt.Sprintf("%s@%s", srv.Nickname, srv.Address())))
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(tls))
		b.WriteString("\n")
		if len(srv.Channels) > 0 {
			b.WriteString(styles.MutedText.Render(padRight("", 16) + strings.Join(srv.Channels, " ")))
			b.WriteString("\n")
		}
	}
	if cfg.Proxy != nil {
		b.WriteString("\n")
		b.WriteString(styles.InfoText.Render(fmt.Sprintf("via %s proxy %s", cfg.Proxy.Kind, cfg.Proxy.Address())))
	}
}

func writeKeyboard(b *strings.Builder, kb config.Keyboard, styles theme.Styles) {
	for _, binding := range kb.Bindings() {
		keys := binding.Keys
		if keys == "" {
			keys = "unbound"
		}
		b.WriteString(styles.Text.Render(padRight(binding.Action, 24)))
		b.WriteString(styles.AlertText.Render(keys))
		b.WriteString("\n")
	}
}

func writeNotifications(b *strings.Builder, cfg config.Config, styles theme.Styles) {
	for _, entry := range cfg.Notifications.Entries() {
		n := entry.Notification
		line := padRight(string(entry.Event), 24)
		if !n.Enabled() {
			b.WriteString(styles.MutedText.Render(line + "off"))
			b.WriteString("\n")
			continue
		}
		var details []string
		if n.ShowToast {
			details = append(details, "toast")
		}
		if n.Sound != nil {
			details = append(details, fmt.Sprintf("sound %s (%s)", n.Sound.Name, n.Sound.MIMEType))
		}
		if d := n.Delay(); d > 0 {
			details = append(details, "delay "+d.String())
		}
		b.WriteString(styles.Text.Render(line))
		b.WriteString(styles.SuccessText.Render(strings.Join(details, ", ")))
		b.WriteString("\n")
	}
}

func writeFileTransfer(b *strings.Builder, ft config.FileTransfer, styles theme.Styles) {
	row := func(label, value string) {
		b.WriteString(styles.Text.Render(padRight(label, 18)))
		b.WriteString(styles.AccentText.Render(value))
		b.WriteString("\n")
	}
	row("passive", fmt.Sprint(ft.Passive))
	row("timeout", ft.Timeout().String())
	save := "ask"
	if ft.SaveDirectory != nil {
		save = *ft.SaveDirectory
	}
	row("save directory", save)
	if s := ft.Server; s != nil {
		row("public address", s.PublicAddress)
		row("bind", fmt.Sprintf("%s ports %d-%d", s.BindAddress, s.BindPortFirst, s.BindPortLast))
	}
}

func writeGeneral(b *strings.Builder, cfg config.Config, styles theme.Styles) {
	row := func(label, value string) {
		b.WriteString(styles.Text.Render(padRight(label, 18)))
		b.WriteString(styles.AccentText.Render(value))
		b.WriteString("\n")
	}
	row("scale factor", fmt.Sprintf("%.2f", cfg.ScaleFactor.Float64()))
	family, size := "default", "default"
	if cfg.Font.Family != nil {
		family = *cfg.Font.Family
	}
	if cfg.Font.Size != nil {
		size = fmt.Sprint(*cfg.Font.Size)
	}
	row("font", family+" / "+size)
	row("tooltips", fmt.Sprint(cfg.Tooltips))
	row("pane toggling", fmt.Sprint(cfg.PaneToggling))
	row("sidebar", fmt.Sprintf("%s, %s", cfg.Sidebar.Position, cfg.Sidebar.DefaultAction))
	row("nicknames", fmt.Sprintf("%s, aligned %s", cfg.Buffer.Nickname.Color, cfg.Buffer.Nickname.Alignment))
	row("timestamps", cfg.Buffer.Timestamp.Format)
}

func (m Model) renderLog(styles theme.Styles) string {
	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(SectionLog.String()))
	b.WriteString("\n\n")

	switch {
	case m.logPath == "":
		b.WriteString(styles.MutedText.Render("Logging to the terminal."))
		return b.String()
	case m.logErr != nil:
		b.WriteString(styles.ErrorText.Render(m.logErr.Error()))
		return b.String()
	case len(m.logLines) == 0:
		b.WriteString(styles.MutedText.Render("No log output yet."))
		return b.String()
	}

	lines := m.logLines
	// Header, footer, section title and blank line.
	if room := m.height - 6; room > 0 && len(lines) > room {
		lines = lines[len(lines)-room:]
	}
	for _, line := range lines {
		b.WriteString(logStyle(styles, logtail.LevelOf(line)).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func logStyle(styles theme.Styles, level logtail.Level) lipgloss.Style {
	switch level {
	case logtail.LevelError:
		return styles.ErrorText
	case logtail.LevelWarn:
		return styles.AlertText
	case logtail.LevelDebug:
		return styles.MutedText
	default:
		return styles.Text
	}
}

func (m Model) renderFooter(styles theme.Styles) string {
	return styles.Footer.Width(m.width).Render(m.help.View(m.keys))
}

func themeLabel(th theme.Theme) string {
	if th.Name == "" {
		return "(unnamed)"
	}
	return th.Name
}

func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	keep := limit - 1 // room for ellipsis rune
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + "…" + string(runes[len(runes)-suffix:])
}
