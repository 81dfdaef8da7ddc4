package usage

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"sort"

	"golang.org/x/exp/slog"

	"retailsync/internal/domain/partition"
)

// Fetcher - источник общего документа
type Fetcher interface {
	FetchLatest(ctx context.Context) (*partition.Document, error)
}

// Servicer интерфейс сервиса статистики
type Servicer interface {
	Report(ctx context.Context) (*Report, error)
}

// Reporter считает статистику по документу, не изменяя его
type Reporter struct {
	capacity int
}

func NewReporter(capacity int) *Reporter {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Reporter{capacity: capacity}
}

// Report строит отчет. Раздел, который не удалось разобрать, учитывается с нулевым размером
// и не входит в итоги.
func (r *Reporter) Report(doc *partition.Document) *Report {
	report := r.Empty()
	if doc == nil {
		return report
	}

	if doc.Kind == partition.KindLegacy {
		report.PerUserUsage = append(report.PerUserUsage, r.legacyUsage(doc))
	} else {
		for _, username := range doc.Usernames() {
			report.PerUserUsage = append(report.PerUserUsage, r.userUsage(doc, username))
		}
	}

	size := validSize(doc, report.PerUserUsage)

	report.TotalUsage.Size = size
	report.TotalUsage.Percentage = math.Round(float64(size)/float64(r.capacity)*10000) / 100
	report.TotalUsage.NearLimit = report.TotalUsage.Percentage > nearLimitPercent

	for _, u := range report.PerUserUsage {
		if u.Error != "" {
			continue
		}
		report.TotalUsage.Users++
		report.TotalUsage.Items += u.Counts.Items
	}

	sortByLastUpdate(report.PerUserUsage)

	return report
}

// validSize - размер сериализованного документа без разделов, которые не удалось разобрать
func validSize(doc *partition.Document, users []UserUsage) int {
	data, err := json.Marshal(doc)
	if err != nil {
		size := 0
		for _, u := range users {
			size += u.Size
		}
		return size
	}
	size := len(data)

	if doc.Kind == partition.KindLegacy {
		if len(users) > 0 && users[0].Error != "" {
			return 0
		}
		return size
	}

	dropped := 0
	for _, u := range users {
		if u.Error == "" {
			continue
		}
		raw, _ := doc.Raw(u.Username)
		name, _ := json.Marshal(u.Username)
		size -= len(name) + 1 + compactSize(raw)
		dropped++
	}

	// Запятые между записями: у n записей их n-1
	switch {
	case dropped == 0:
	case dropped < doc.Len():
		size -= dropped
	default:
		size -= dropped - 1
	}

	return size
}

// Empty возвращает отчет с нулевыми значениями
func (r *Reporter) Empty() *Report {
	return &Report{
		TotalUsage:   TotalUsage{Limit: r.capacity},
		PerUserUsage: []UserUsage{},
	}
}

func (r *Reporter) userUsage(doc *partition.Document, username string) UserUsage {
	usage := UserUsage{Username: username}

	p, _, err := doc.Partition(username)
	if err != nil {
		usage.Error = err.Error()
		return usage
	}

	raw, _ := doc.Raw(username)
	usage.Size = compactSize(raw)
	usage.Counts = p.Counts()
	if !p.LastUpdate.IsZero() {
		t := p.LastUpdate
		usage.LastUpdate = &t
	}

	return usage
}

func (r *Reporter) legacyUsage(doc *partition.Document) UserUsage {
	usage := UserUsage{Username: LegacyUsername, Legacy: true}

	p, err := doc.LegacyPayload()
	if err != nil {
		usage.Error = err.Error()
		return usage
	}

	usage.Size = compactSize(doc.LegacyRaw())
	usage.Counts = p.Counts()
	if !p.LastUpdate.IsZero() {
		t := p.LastUpdate
		usage.LastUpdate = &t
	}

	return usage
}

// sortByLastUpdate: свежие сверху, без даты - в конце в исходном порядке
func sortByLastUpdate(users []UserUsage) {
	sort.SliceStable(users, func(i, j int) bool {
		a, b := users[i].LastUpdate, users[j].LastUpdate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
}

func compactSize(raw json.RawMessage) int {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return 0
	}
	return buf.Len()
}

// Service строит отчет по актуальному удаленному документу
type Service struct {
	remote   Fetcher
	reporter *Reporter
	log      *slog.Logger
}

func NewService(remote Fetcher, reporter *Reporter, log *slog.Logger) *Service {
	return &Service{
		remote:   remote,
		reporter: reporter,
		log:      log.With(slog.String("component", "usage_service")),
	}
}

// Report возвращает отчет; если удаленный документ недоступен - нулевой отчет
func (s *Service) Report(ctx context.Context) (*Report, error) {
	doc, err := s.remote.FetchLatest(ctx)
	if err != nil {
		s.log.Warn("remote unavailable, reporting empty usage", slog.String("error", err.Error()))
		return s.reporter.Empty(), nil
	}

	report := s.reporter.Report(doc)
	report.RemoteAvailable = true

	return report, nil
}
