// Package insights runs rule-based checks over a schedule and reports what
// needs attention. Messages are written in Brazilian Portuguese.
package insights

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/javiermolinar/ganttline/internal/dateutil"
	"github.com/javiermolinar/ganttline/internal/task"
)

// Level ranks an insight. Lower levels sort first.
type Level string

const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelPositive Level = "positive"
	LevelInfo     Level = "info"
)

func (l Level) rank() int {
	switch l {
	case LevelCritical:
		return 0
	case LevelWarning:
		return 1
	case LevelPositive:
		return 2
	case LevelInfo:
		return 3
	default:
		return 99
	}
}

// Insight is one finding about the schedule.
type Insight struct {
	Level       Level  `json:"type"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

const (
	dueSoonDays       = 3
	overloadThreshold = 5
	maxNamed          = 3
)

// Generate analyzes tasks and projects as of now. Deleted tasks are ignored.
// The result is ordered critical, warning, positive, info.
func Generate(tasks []*task.Task, projects []*task.Project, now time.Time) []Insight {
	today := dateutil.StartOfDay(now)
	live := make([]*task.Task, 0, len(tasks))
	for _, t := range tasks {
		if t != nil && !t.IsDeleted() {
			live = append(live, t)
		}
	}
	projects = slices.DeleteFunc(slices.Clone(projects), func(p *task.Project) bool { return p == nil })

	var out []Insight
	out = append(out, overdueTasks(live, today)...)
	out = append(out, overdueProjects(projects, today)...)
	out = append(out, unassignedHighPriority(live)...)

	out = append(out, dueSoon(live, today)...)
	out = append(out, overloadedAssignees(live)...)
	out = append(out, behindSchedule(projects, today)...)

	out = append(out, completed(live)...)
	out = append(out, onTrack(projects, today)...)
	out = append(out, topFinisher(live)...)

	out = append(out, summary(live, projects)...)

	slices.SortStableFunc(out, func(a, b Insight) int {
		return cmp.Compare(a.Level.rank(), b.Level.rank())
	})
	return out
}

func overdueTasks(tasks []*task.Task, today time.Time) []Insight {
	var overdue []*task.Task
	high := 0
	for _, t := range tasks {
		if !t.IsOverdue(today) {
			continue
		}
		overdue = append(overdue, t)
		if t.Priority == task.PriorityHigh {
			high++
		}
	}
	if len(overdue) == 0 {
		return nil
	}

	n := len(overdue)
	desc := fmt.Sprintf("%d %s com prazo vencido.", n, plural(n, "tarefa", "tarefas"))
	if high > 0 {
		desc += fmt.Sprintf(" %d %s de alta prioridade.", high, plural(high, "é", "são"))
	}

	worst := slices.MinFunc(overdue, func(a, b *task.Task) int {
		return dateutil.StartOfDay(a.EndDate).Compare(dateutil.StartOfDay(b.EndDate))
	})
	late := dateutil.DaysBetween(dateutil.StartOfDay(worst.EndDate), today)
	desc += fmt.Sprintf(" %q está %d %s atrasada.", worst.Name, late, plural(late, "dia", "dias"))

	return []Insight{{
		Level:       LevelCritical,
		Icon:        "AlertTriangle",
		Title:       fmt.Sprintf("%d %s", n, plural(n, "tarefa atrasada", "tarefas atrasadas")),
		Description: desc,
	}}
}

func overdueProjects(projects []*task.Project, today time.Time) []Insight {
	var out []Insight
	for _, p := range projects {
		if p.EndDate.IsZero() || p.Status == task.ProjectCompleted || !dateutil.StartOfDay(p.EndDate).Before(today) {
			continue
		}
		late := dateutil.DaysBetween(dateutil.StartOfDay(p.EndDate), today)
		out = append(out, Insight{
			Level: LevelCritical,
			Icon:  "FolderClock",
			Title: fmt.Sprintf("Projeto %q passou do prazo", p.Name),
			Description: fmt.Sprintf("O prazo terminou há %d %s e o projeto está %d%% concluído.",
				late, plural(late, "dia", "dias"), p.Progress),
		})
	}
	return out
}

func unassignedHighPriority(tasks []*task.Task) []Insight {
	var names []string
	for _, t := range tasks {
		if t.Priority == task.PriorityHigh && t.AssigneeID == "" && !t.IsCompleted() {
			names = append(names, t.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	n := len(names)
	extra := ""
	if n > maxNamed {
		extra = fmt.Sprintf(" e mais %d", n-maxNamed)
	}
	return []Insight{{
		Level:       LevelCritical,
		Icon:        "UserX",
		Title:       fmt.Sprintf("%d %s de alta prioridade sem responsável", n, plural(n, "tarefa", "tarefas")),
		Description: fmt.Sprintf("%s%s %s de um responsável atribuído.", quoteFirst(names), extra, plural(n, "precisa", "precisam")),
	}}
}

func dueSoon(tasks []*task.Task, today time.Time) []Insight {
	deadline := today.AddDate(0, 0, dueSoonDays)
	var names []string
	for _, t := range tasks {
		end := dateutil.StartOfDay(t.EndDate)
		if t.IsCompleted() || end.Before(today) || end.After(deadline) {
			continue
		}
		names = append(names, t.Name)
	}
	if len(names) == 0 {
		return nil
	}

	n := len(names)
	return []Insight{{
		Level:       LevelWarning,
		Icon:        "Clock",
		Title:       fmt.Sprintf("%d %s nos próximos %d dias", n, plural(n, "tarefa vence", "tarefas vencem"), dueSoonDays),
		Description: fmt.Sprintf("%s %s de atenção.", quoteFirst(names), plural(n, "precisa", "precisam")),
	}}
}

func overloadedAssignees(tasks []*task.Task) []Insight {
	order, counts := countBy(tasks, func(t *task.Task) bool { return t.Status.Active() })

	var out []Insight
	for _, who := range order {
		n := counts[who]
		if n < overloadThreshold {
			continue
		}
		out = append(out, Insight{
			Level:       LevelWarning,
			Icon:        "UserCog",
			Title:       fmt.Sprintf("%s está sobrecarregado(a)", who),
			Description: fmt.Sprintf("%d tarefas ativas atribuídas. Considere redistribuir a carga de trabalho.", n),
		})
	}
	return out
}

// scheduled reports the expected progress of a project that is underway.
func scheduled(p *task.Project, today time.Time) (float64, bool) {
	if p.Status == task.ProjectCompleted || p.Status == task.ProjectOnHold {
		return 0, false
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return 0, false
	}
	return p.ExpectedProgress(today)
}

func behindSchedule(projects []*task.Project, today time.Time) []Insight {
	var out []Insight
	for _, p := range projects {
		expected, ok := scheduled(p, today)
		if !ok || expected <= 30 || float64(p.Progress) >= expected*0.7 {
			continue
		}
		out = append(out, Insight{
			Level: LevelWarning,
			Icon:  "TrendingDown",
			Title: fmt.Sprintf("%q está atrás do cronograma", p.Name),
			Description: fmt.Sprintf("Progresso atual: %d%%. Esperado: %d%%. Diferença de %d pontos percentuais.",
				p.Progress, int(expected), int(expected-float64(p.Progress))),
		})
	}
	return out
}

func completed(tasks []*task.Task) []Insight {
	n := 0
	for _, t := range tasks {
		if t.IsCompleted() {
			n++
		}
	}
	if n == 0 {
		return nil
	}

	return []Insight{{
		Level:       LevelPositive,
		Icon:        "CheckCircle2",
		Title:       fmt.Sprintf("%d %s", n, plural(n, "tarefa concluída", "tarefas concluídas")),
		Description: fmt.Sprintf("%d%% de todas as tarefas foram finalizadas.", n*100/len(tasks)),
	}}
}

func onTrack(projects []*task.Project, today time.Time) []Insight {
	var names []string
	for _, p := range projects {
		expected, ok := scheduled(p, today)
		if ok && float64(p.Progress) >= expected {
			names = append(names, p.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	n := len(names)
	return []Insight{{
		Level:       LevelPositive,
		Icon:        "TrendingUp",
		Title:       fmt.Sprintf("%d %s no prazo", n, plural(n, "projeto", "projetos")),
		Description: fmt.Sprintf("%s %s com progresso igual ou acima do esperado.", quoteFirst(names), plural(n, "está", "estão")),
	}}
}

func topFinisher(tasks []*task.Task) []Insight {
	order, counts := countBy(tasks, (*task.Task).IsCompleted)

	top, best := "", 0
	for _, who := range order {
		if counts[who] > best {
			top, best = who, counts[who]
		}
	}
	if best < 2 {
		return nil
	}

	return []Insight{{
		Level:       LevelPositive,
		Icon:        "Trophy",
		Title:       fmt.Sprintf("%s lidera em entregas", top),
		Description: fmt.Sprintf("%d tarefas concluídas. Maior número de entregas da equipe.", best),
	}}
}

func summary(tasks []*task.Task, projects []*task.Project) []Insight {
	if len(tasks) == 0 {
		return []Insight{{
			Level:       LevelInfo,
			Icon:        "Info",
			Title:       "Nenhuma tarefa cadastrada",
			Description: "Comece criando projetos e tarefas para ver insights detalhados.",
		}}
	}

	active := 0
	for _, p := range projects {
		if p.Status == task.ProjectActive {
			active++
		}
	}
	assignees, _ := countBy(tasks, func(*task.Task) bool { return true })
	pending := map[task.Priority]int{}
	for _, t := range tasks {
		if !t.IsCompleted() {
			pending[t.Priority]++
		}
	}

	return []Insight{{
		Level: LevelInfo,
		Icon:  "BarChart3",
		Title: "Resumo geral",
		Description: fmt.Sprintf("%d %s, %d %s, %d tarefas no total. Pendentes por prioridade: %d alta, %d média, %d baixa.",
			active, plural0(active, "projeto ativo", "projetos ativos"),
			len(assignees), plural0(len(assignees), "responsável", "responsáveis"),
			len(tasks),
			pending[task.PriorityHigh], pending[task.PriorityMedium], pending[task.PriorityLow]),
	}}
}

// countBy counts matching tasks per assignee, keeping first-seen order.
// Unassigned tasks are skipped.
func countBy(tasks []*task.Task, match func(*task.Task) bool) ([]string, map[string]int) {
	var order []string
	counts := map[string]int{}
	for _, t := range tasks {
		if t.AssigneeID == "" || !match(t) {
			continue
		}
		if _, seen := counts[t.AssigneeID]; !seen {
			order = append(order, t.AssigneeID)
		}
		counts[t.AssigneeID]++
	}
	return order, counts
}

// quoteFirst quotes and joins up to maxNamed names.
func quoteFirst(names []string) string {
	quoted := make([]string, 0, maxNamed)
	for _, n := range names[:min(len(names), maxNamed)] {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}
	return strings.Join(quoted, ", ")
}

// plural picks the singular form for n <= 1.
func plural(n int, one, many string) string {
	if n > 1 {
		return many
	}
	return one
}

// plural0 picks the singular form only for exactly one.
func plural0(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
