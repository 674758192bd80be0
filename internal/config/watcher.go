/*
ConfigWatcher 配置文件监听器
监听配置目录，配置文件写入后防抖 500ms 重新加载，并把新旧配置交给回调。
加载失败时保留旧配置，回调出错不影响后续回调。
*/
package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// ReloadCallback 配置重载回调函数类型
type ReloadCallback func(oldConfig, newConfig *Config) error

// ConfigWatcher 配置文件监听器
type ConfigWatcher struct {
	watcher    *fsnotify.Watcher
	configPath string
	env        string
	current    *Config
	callbacks  []ReloadCallback
	log        logrus.FieldLogger
	debounce   time.Duration
	mu         sync.RWMutex
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	started    bool
}

// NewConfigWatcher 创建配置文件监听器，current 为当前生效的配置
func NewConfigWatcher(configPath, env string, current *Config, log logrus.FieldLogger) (*ConfigWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if configPath == "" {
		configPath = getDefaultConfigPath()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &ConfigWatcher{
		watcher:    watcher,
		configPath: configPath,
		env:        env,
		current:    current,
		log:        log,
		debounce:   500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}, nil
}

// Start 启动配置文件监听
func (cw *ConfigWatcher) Start() error {
	if err := cw.watcher.Add(cw.configPath); err != nil {
		return fmt.Errorf("failed to add config path to watcher: %w", err)
	}
	cw.started = true
	go cw.watchLoop()
	cw.log.WithField("path", cw.configPath).Info("Config watcher started")
	return nil
}

// Stop 停止配置文件监听
func (cw *ConfigWatcher) Stop() error {
	cw.cancel()
	if !cw.started {
		return cw.watcher.Close()
	}
	select {
	case <-cw.done:
	case <-time.After(5 * time.Second):
		cw.log.Warn("Config watcher stop timeout")
	}
	return cw.watcher.Close()
}

// AddCallback 添加配置重载回调函数
func (cw *ConfigWatcher) AddCallback(callback ReloadCallback) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = append(cw.callbacks, callback)
}

// Current 当前生效的配置
func (cw *ConfigWatcher) Current() *Config {
	cw.mu.RLock()
	defer cw.mu.RUnlock()
	return cw.current
}

func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.done)

	debounceTimer := time.NewTimer(0)
	if !debounceTimer.Stop() {
		<-debounceTimer.C
	}

	for {
		select {
		case <-cw.ctx.Done():
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 && isConfigFile(event.Name) {
				debounceTimer.Reset(cw.debounce)
			}

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.log.WithError(err).Warn("Config watcher error")

		case <-debounceTimer.C:
			if err := cw.reload(); err != nil {
				cw.log.WithError(err).Error("Failed to reload config")
			}
		}
	}
}

// isConfigFile 只关心 config*.yaml / config*.yml
func isConfigFile(filename string) bool {
	base := filepath.Base(filename)
	for _, pattern := range []string{"config.yaml", "config.yml", "config.*.yaml", "config.*.yml"} {
		if ok, _ := filepath.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func (cw *ConfigWatcher) reload() error {
	newConfig, err := LoadConfig(cw.configPath, cw.env)
	if err != nil {
		return fmt.Errorf("failed to load new config: %w", err)
	}

	cw.mu.Lock()
	oldConfig := cw.current
	cw.current = newConfig
	callbacks := make([]ReloadCallback, len(cw.callbacks))
	copy(callbacks, cw.callbacks)
	cw.mu.Unlock()

	for _, callback := range callbacks {
		if err := callback(oldConfig, newConfig); err != nil {
			cw.log.WithError(err).Warn("Config reload callback error")
		}
	}
	cw.log.Info("Config reloaded successfully")
	return nil
}
