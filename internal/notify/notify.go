// Package notify é a superfície de notificações dos fluxos: cada desfecho
// terminal gera exatamente uma mensagem.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Message struct {
	Level Level  `json:"level"`
	Code  string `json:"code,omitempty"`
	Text  string `json:"text"`
}

type Notifier interface {
	Success(text string)
	Error(code, text string)
	Info(text string)
}

// ======================================================
// Collector
// ======================================================

// Collector acumula as mensagens de uma requisição para devolvê-las no JSON.
type Collector struct {
	mu   sync.Mutex
	msgs []Message
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) add(m Message) {
	c.mu.Lock()
	c.msgs = append(c.msgs, m)
	c.mu.Unlock()
}

func (c *Collector) Success(text string) {
	c.add(Message{Level: LevelSuccess, Text: text})
}

func (c *Collector) Error(code, text string) {
	c.add(Message{Level: LevelError, Code: code, Text: text})
}

func (c *Collector) Info(text string) {
	c.add(Message{Level: LevelInfo, Text: text})
}

func (c *Collector) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

func (c *Collector) Count(level Level) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, m := range c.msgs {
		if m.Level == level {
			n++
		}
	}
	return n
}

// ======================================================
// Log
// ======================================================

type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(text string) {
	n.log.Info(text, zap.String("notify", "success"))
}

func (n *LogNotifier) Info(text string) {
	n.log.Info(text, zap.String("notify", "info"))
}

func (n *LogNotifier) Error(code, text string) {
	n.log.Warn(text, zap.String("notify", "error"), zap.String("code", code))
}

// Tee replica para vários destinos (coletor da resposta + log).
type Tee []Notifier

func (t Tee) Success(text string) {
	for _, n := range t {
		n.Success(text)
	}
}

func (t Tee) Error(code, text string) {
	for _, n := range t {
		n.Error(code, text)
	}
}

func (t Tee) Info(text string) {
	for _, n := range t {
		n.Info(text)
	}
}
