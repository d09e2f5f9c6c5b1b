// Package jobs управляет фоновыми задачами (cron).
// Единственная задача — ежедневная сводка балансов по группам.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"modelbridge.asia/balance-bot/internal/features/balance"
	"modelbridge.asia/balance-bot/internal/features/groups"
)

// Scheduler управляет фоновыми задачами.
type Scheduler struct {
	cron           *cron.Cron
	balanceService *balance.Service
	router         *groups.Router
	sendFunc       func(chatID int64, text string)
	summarySpec    string
}

// NewScheduler создаёт планировщик в заданном часовом поясе.
// Пустой summarySpec отключает сводку.
func NewScheduler(
	balanceService *balance.Service,
	router *groups.Router,
	sendFunc func(chatID int64, text string),
	summarySpec string,
	timezone string,
) *Scheduler {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		log.WithError(err).Warnf("Не удалось загрузить %s, используем UTC+8", timezone)
		loc = time.FixedZone("CST", 8*60*60)
	}

	return &Scheduler{
		cron:           cron.New(cron.WithLocation(loc)),
		balanceService: balanceService,
		router:         router,
		sendFunc:       sendFunc,
		summarySpec:    summarySpec,
	}
}

// Start запускает фоновые задачи.
func (s *Scheduler) Start(ctx context.Context) {
	if s.summarySpec == "" {
		log.Info("Ежедневная сводка балансов выключена (SUMMARY_CRON пуст)")
		return
	}

	if _, err := s.cron.AddFunc(s.summarySpec, func() {
		log.Info("[CRON] Сводка балансов")
		s.postSummaries(ctx)
	}); err != nil {
		log.WithError(err).Error("Некорректное расписание SUMMARY_CRON, сводка выключена")
		return
	}

	s.cron.Start()
	log.WithField("spec", s.summarySpec).Info("Планировщик задач запущен")
}

// Stop останавливает планировщик, дождавшись текущих задач.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info("Планировщик задач остановлен")
}

// postSummaries отправляет текущий баланс в каждую сконфигурированную
// группу на её языке. Сбой одной группы не мешает остальным.
func (s *Scheduler) postSummaries(ctx context.Context) {
	for _, info := range s.router.Configured() {
		bal, err := s.balanceService.CurrentBalance(ctx, info.ChatID)
		if err != nil {
			log.WithError(err).WithField("group_id", info.ChatID).Error("[CRON] Ошибка получения баланса")
			continue
		}
		s.sendFunc(info.ChatID, balance.FormatSummary(bal, info.Language))
	}
}
