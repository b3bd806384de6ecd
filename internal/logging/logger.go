// internal/logging/logger.go
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

// Level — уровень логирования
type Level = slog.Level

const (
	DEBUG = slog.LevelDebug
	INFO  = slog.LevelInfo
	WARN  = slog.LevelWarn
	ERROR = slog.LevelError
)

// Logger — логгер отдельного компонента (системы, хранилища и т.п.)
type Logger struct {
	component string
	base      *slog.Logger
}

// Manager хранит логгеры компонентов и общий обработчик.
type Manager struct {
	mu      sync.RWMutex
	level   *slog.LevelVar
	handler slog.Handler
	loggers map[string]*Logger
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager возвращает глобальный менеджер логгеров
func GetManager() *Manager {
	managerOnce.Do(func() {
		lv := new(slog.LevelVar)
		lv.Set(INFO)
		globalManager = &Manager{
			level:   lv,
			handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv}),
			loggers: make(map[string]*Logger),
		}
	})
	return globalManager
}

// Configure переключает вывод и уровень для всех логгеров сразу.
func Configure(w io.Writer, level Level) {
	m := GetManager()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level.Set(level)
	m.handler = slog.NewTextHandler(w, &slog.HandlerOptions{Level: m.level})
	for name, l := range m.loggers {
		l.base = slog.New(m.handler).With("component", name)
	}
}

// For возвращает логгер компонента, создавая его при необходимости
func For(component string) *Logger {
	return GetManager().Get(component)
}

// Get возвращает логгер по имени компонента.
func (m *Manager) Get(component string) *Logger {
	m.mu.RLock()
	if l, ok := m.loggers[component]; ok {
		m.mu.RUnlock()
		return l
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	// Проверяем ещё раз под write lock
	if l, ok := m.loggers[component]; ok {
		return l
	}
	l := &Logger{
		component: component,
		base:      slog.New(m.handler).With("component", component),
	}
	m.loggers[component] = l
	return l
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.base.Debug(fmt.Sprintf(format, args...))
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.base.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.base.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Errorf(format string, args ...interface{}) {
	l.base.Error(fmt.Sprintf(format, args...))
}

// Component возвращает имя компонента
func (l *Logger) Component() string {
	return l.component
}
