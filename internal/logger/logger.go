package logger

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/Lutefd/crypto-api/internal/model"
	"github.com/Lutefd/crypto-api/internal/repository"
	"github.com/google/uuid"
)

const Source = "crypto-api"

var (
	InfoLogger       *log.Logger
	WarnLogger       *log.Logger
	ErrorLogger      *log.Logger
	logChan          chan model.Log
	logDone          chan struct{}
	logRepo          repository.LogRepository
	mu               sync.RWMutex
	loggerBufferSize = 1000
)

func init() {
	InfoLogger = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime|log.Lshortfile)
	WarnLogger = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime|log.Lshortfile)
	ErrorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
}

// InitLogger starts persisting every entry to repo. Without it entries only
// go to the standard loggers.
func InitLogger(repo repository.LogRepository) {
	mu.Lock()
	defer mu.Unlock()

	logRepo = repo
	logChan = make(chan model.Log, loggerBufferSize)
	logDone = make(chan struct{})
	go processLogs(repo, logChan, logDone)
}

// processLogs closes done once entries is closed and every entry is saved.
func processLogs(repo repository.LogRepository, entries <-chan model.Log, done chan<- struct{}) {
	defer close(done)
	for entry := range entries {
		if err := repo.SaveLog(context.Background(), entry); err != nil {
			ErrorLogger.Printf("failed to save log: %v", err)
		}
	}
}

func logAsync(level model.LogLevel, message string) {
	switch level {
	case model.LogLevelInfo:
		InfoLogger.Output(3, message)
	case model.LogLevelWarn:
		WarnLogger.Output(3, message)
	default:
		ErrorLogger.Output(3, message)
	}

	mu.RLock()
	defer mu.RUnlock()
	if logChan == nil {
		return
	}

	entry := model.Log{
		ID:        uuid.New(),
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
		Source:    Source,
	}

	select {
	case logChan <- entry:
	default:
		ErrorLogger.Printf("log channel full. Dropping log: %v", entry)
	}
}

func Info(v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprint(v...))
}

func Infof(format string, v ...interface{}) {
	logAsync(model.LogLevelInfo, fmt.Sprintf(format, v...))
}

func Warnf(format string, v ...interface{}) {
	logAsync(model.LogLevelWarn, fmt.Sprintf(format, v...))
}

func Error(v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprint(v...))
}

func Errorf(format string, v ...interface{}) {
	logAsync(model.LogLevelError, fmt.Sprintf(format, v...))
}

// Shutdown stops accepting entries, waits until the last one is saved and
// closes the repository.
func Shutdown(ctx context.Context) error {
	mu.Lock()
	entries, done, repo := logChan, logDone, logRepo
	logChan, logDone, logRepo = nil, nil, nil
	mu.Unlock()

	if entries == nil {
		return nil
	}
	close(entries)

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return repo.Close()
	}
}
