package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ads-analytics-api/internal/config"
)

// TokenRefresher é a operação de renovação exposta pelo cliente do Meta
type TokenRefresher interface {
	RefreshToken() error
}

// TokenRefreshService agenda a renovação periódica do token de longa
// duração do Graph API, para que ele nunca chegue perto de expirar.
type TokenRefreshService struct {
	scheduler         *gocron.Scheduler
	cfg               *config.Config
	refresher         TokenRefresher
	refreshRunning    bool
	refreshMutex      sync.Mutex
	lastRefreshAt     time.Time
	lastRefreshStatus string
}

// NewTokenRefreshService cria uma nova instância do serviço de renovação de token
func NewTokenRefreshService(refresher TokenRefresher, cfg *config.Config) *TokenRefreshService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   cfg.TokenRefresh.CronSchedule,
		"refresh_enabled": cfg.TokenRefresh.Enabled,
	}).Info("Configuração do agendador de renovação de token carregada")

	return &TokenRefreshService{
		scheduler: scheduler,
		cfg:       cfg,
		refresher: refresher,
	}
}

// Start inicia o agendador
func (s *TokenRefreshService) Start(ctx context.Context) error {
	if !s.cfg.TokenRefresh.Enabled {
		logrus.Info("Renovação agendada de token desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.TokenRefresh.CronSchedule).Info("Iniciando agendador de renovação de token")

	_, err := s.scheduler.Cron(s.cfg.TokenRefresh.CronSchedule).Do(func() {
		s.refreshToken()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar renovação de token: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de renovação de token")
		s.scheduler.Stop()
	}()

	return nil
}

// refreshToken executa uma renovação, ignorando disparos sobrepostos
func (s *TokenRefreshService) refreshToken() {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("Renovação de token já em andamento, ignorando")
		return
	}
	s.refreshRunning = true
	s.refreshMutex.Unlock()

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.refreshMutex.Unlock()
	}()

	logrus.Info("Iniciando renovação agendada do token do Meta")

	if err := s.refresher.RefreshToken(); err != nil {
		logrus.WithError(err).Error("Erro ao renovar token do Meta")

		s.refreshMutex.Lock()
		s.lastRefreshAt = time.Now()
		s.lastRefreshStatus = "error: " + err.Error()
		s.refreshMutex.Unlock()
		return
	}

	s.refreshMutex.Lock()
	s.lastRefreshAt = time.Now()
	s.lastRefreshStatus = "ok"
	s.refreshMutex.Unlock()

	logrus.Info("Renovação agendada do token do Meta concluída")
}

// Status retorna o horário e resultado da última renovação executada
func (s *TokenRefreshService) Status() (time.Time, string) {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	return s.lastRefreshAt, s.lastRefreshStatus
}
