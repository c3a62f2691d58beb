package availability

import (
	"sort"
	"time"

	"github.com/m04kA/CMP-SchedulingService/internal/domain"
	"github.com/m04kA/CMP-SchedulingService/pkg/types"
)

// interval полуинтервал [start, end) в минутах с начала суток
type interval struct {
	start int
	end   int
}

func (i interval) minutes() int {
	return i.end - i.start
}

// DayAvailability доступность сотрудника на дату
type DayAvailability struct {
	// Windows упорядоченные непересекающиеся окна [start, end)
	// Пустой слайс — валидное состояние "нет расписания", а не ошибка
	Windows []domain.AvailabilityWindow
	// BlockedMinutes рабочие минуты, вырезанные отпуском или блокировками
	// Из Windows они уже исключены; хранятся отдельно для отчётности
	BlockedMinutes int
}

// TotalAvailableMinutes возвращает суммарную длительность окон
func (d *DayAvailability) TotalAvailableMinutes() int {
	total := 0
	for _, w := range d.Windows {
		total += w.DurationMinutes()
	}
	return total
}

// buildDayAvailability чистая функция вычисления доступности:
// (недельное расписание на день недели + добавленные окна)
// минус одобренные отпуска минус вырезанные периоды
func buildDayAvailability(
	staffID int64,
	date time.Time,
	entries []domain.WeeklyScheduleEntry,
	overrides []domain.ScheduleOverride,
	timeOff []domain.TimeOff,
) DayAvailability {
	base := make([]interval, 0, len(entries))

	for _, e := range entries {
		if iv, ok := toInterval(e.Start, e.End); ok {
			base = append(base, iv)
		}
	}
	for _, o := range overrides {
		if o.Kind != domain.OverrideExtra {
			continue
		}
		if iv, ok := toInterval(o.Start, o.End); ok {
			base = append(base, iv)
		}
	}

	base = mergeIntervals(base)

	// Одобренный отпуск закрывает весь день: всё расписание уходит в blocked
	for _, t := range timeOff {
		if t.Approved && t.Covers(date) {
			blocked := 0
			for _, iv := range base {
				blocked += iv.minutes()
			}
			return DayAvailability{Windows: []domain.AvailabilityWindow{}, BlockedMinutes: blocked}
		}
	}

	blocks := make([]interval, 0)
	for _, o := range overrides {
		if o.Kind != domain.OverrideBlocked {
			continue
		}
		if iv, ok := toInterval(o.Start, o.End); ok {
			blocks = append(blocks, iv)
		}
	}
	blocks = mergeIntervals(blocks)

	remaining, blockedMinutes := subtractIntervals(base, blocks)

	windows := make([]domain.AvailabilityWindow, 0, len(remaining))
	for _, iv := range remaining {
		start, err := types.NewTimeStringFromMinutes(iv.start)
		if err != nil {
			continue
		}
		end, err := types.NewTimeStringFromMinutes(iv.end)
		if err != nil {
			continue
		}
		windows = append(windows, domain.AvailabilityWindow{
			StaffID: staffID,
			Date:    date,
			Start:   start,
			End:     end,
		})
	}

	return DayAvailability{Windows: windows, BlockedMinutes: blockedMinutes}
}

// toInterval конвертирует пару TimeString в интервал, отбрасывая пустые и перевёрнутые
func toInterval(start, end types.TimeString) (interval, bool) {
	s, err := start.Minutes()
	if err != nil {
		return interval{}, false
	}
	e, err := end.Minutes()
	if err != nil {
		return interval{}, false
	}
	if e <= s {
		return interval{}, false
	}
	return interval{start: s, end: e}, true
}

// mergeIntervals сортирует интервалы и склеивает пересекающиеся и смежные
func mergeIntervals(intervals []interval) []interval {
	if len(intervals) == 0 {
		return intervals
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	merged := []interval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged
}

// subtractIntervals вычитает blocks из base
// Возвращает оставшиеся интервалы и количество вырезанных минут
// (считаются только пересечения blocks с base, а не длина blocks)
func subtractIntervals(base, blocks []interval) ([]interval, int) {
	remaining := base
	removed := 0

	for _, b := range blocks {
		next := make([]interval, 0, len(remaining))
		for _, iv := range remaining {
			// Нет пересечения - интервал сохраняется целиком
			if b.end <= iv.start || b.start >= iv.end {
				next = append(next, iv)
				continue
			}

			overlapStart := maxInt(iv.start, b.start)
			overlapEnd := minInt(iv.end, b.end)
			removed += overlapEnd - overlapStart

			if iv.start < overlapStart {
				next = append(next, interval{start: iv.start, end: overlapStart})
			}
			if overlapEnd < iv.end {
				next = append(next, interval{start: overlapEnd, end: iv.end})
			}
		}
		remaining = next
	}

	return remaining, removed
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
