package report

import (
	"fmt"

	"github.com/bnema/xpertdoc-portal-cli/internal/application"
	"github.com/bnema/xpertdoc-portal-cli/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

func RenderRun(report application.RunReport) (string, error) {
	return render(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render("Xpertdoc Portal workflow"),
			s.header.Render(report.Session.String()),
			s.section.Render(executionView(report.Execution, s)),
			s.section.Render(fileView(report.File, report.OriginalContent, s)),
			s.section.Render(field(s, "checked in", s.ok.Render(formatBytes(report.CheckedInBytes)))),
		)
	})
}

func RenderExecution(result domain.TemplateExecutionResult) (string, error) {
	return render(func(s styles) string {
		return executionView(result, s)
	})
}

func RenderFile(file domain.ContentFile, content []byte) (string, error) {
	return render(func(s styles) string {
		return fileView(file, content, s)
	})
}

func RenderCheckIn(file domain.ContentFile, written int) (string, error) {
	return render(func(s styles) string {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.title.Render(file.Name),
			field(s, "checked in", s.ok.Render(formatBytes(written))),
		)
	})
}

func RenderProfiles(profiles []domain.Profile, active domain.ProfileName) (string, error) {
	return render(func(s styles) string {
		lines := []string{
			s.title.Render("Portal profiles"),
			s.header.Render(fmt.Sprintf("profiles: %d", len(profiles))),
		}
		if len(profiles) == 0 {
			lines = append(lines, s.empty.Render("No profiles configured."))
			return lipgloss.JoinVertical(lipgloss.Left, lines...)
		}

		for _, profile := range profiles {
			name := string(profile.Name)
			if profile.Name == active {
				name += " *"
			}
			lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left,
				s.title.Render(name),
				field(s, "url", s.value.Render(profile.URL)),
				field(s, "auth", s.value.Render(authLabel(profile.Auth))),
			)))
		}
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	})
}

func executionView(result domain.TemplateExecutionResult, s styles) string {
	lines := []string{s.title.Render(result.Template.String())}
	if !result.Succeeded() {
		lines = append(lines,
			field(s, "status", s.failure.Render(string(domain.ExecutionFailed))),
			field(s, "reason", s.value.Render(result.FailureReason)),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines,
		field(s, "status", s.ok.Render(string(result.Status))),
		field(s, "execution", s.value.Render(result.ExecutionID.String())),
		field(s, "result", s.value.Render(result.ResultID.String())),
		field(s, "document", s.value.Render(formatBytes(len(result.Content)))),
	)
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func fileView(file domain.ContentFile, content []byte, s styles) string {
	state := s.ok.Render(string(domain.LockStateAvailable))
	if file.LockState() == domain.LockStateCheckedOut {
		state = s.locked.Render(string(domain.LockStateCheckedOut))
		if file.CheckedOutBy != "" {
			state += s.value.Render(" by " + file.CheckedOutBy)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.title.Render(file.Name),
		field(s, "file", s.value.Render(file.ID.String())),
		field(s, "lock", state),
		field(s, "content", s.value.Render(formatBytes(len(content)))),
	)
}

func field(s styles, label string, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.label.Render(label+":"), value)
}

func authLabel(auth domain.ProfileAuth) string {
	if auth.Mode == domain.CredentialModeExplicit {
		return fmt.Sprintf("%s (%s)", auth.Mode, auth.Username)
	}
	return string(domain.CredentialModeAmbient)
}

func formatBytes(n int) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}

	div, exp := unit, 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
