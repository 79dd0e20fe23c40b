package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTPAddr      string
	LogFile       string
	AllowedOrigin string // empty allows any origin

	RoomCodeLen int

	WSSendQueue    int
	WSReadLimit    int64
	WSWriteTimeout time.Duration
	WSPongTimeout  time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":5000"),
		LogFile:        getenv("LOG_FILE", "app.log"),
		AllowedOrigin:  getenv("ALLOWED_ORIGIN", ""),
		RoomCodeLen:    getenvInt("ROOM_CODE_LEN", 6),
		WSSendQueue:    getenvInt("WS_SEND_QUEUE", 64),
		WSReadLimit:    int64(getenvInt("WS_READ_LIMIT", 1<<16)),
		WSWriteTimeout: time.Duration(getenvInt("WS_WRITE_TIMEOUT_MS", 5000)) * time.Millisecond,
		WSPongTimeout:  time.Duration(getenvInt("WS_PONG_TIMEOUT_MS", 60000)) * time.Millisecond,
	}
}
