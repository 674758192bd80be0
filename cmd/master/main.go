/*
 * @date: 2026.03.20
 * @description: 主程序入口
 * @func: 初始化应用、启动服务器、等待中断信号后优雅关闭
 */

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/app/master"
)

// defaultShutdownTimeout 配置未给出关闭超时时使用
const defaultShutdownTimeout = 5 * time.Second

func main() {
	configPath := flag.String("config", "", "配置目录，默认读取 BACKOFFICE_CONFIG_PATH 或 configs")
	env := flag.String("env", "", "环境标识 development / test / production，默认读取 BACKOFFICE_ENV")
	flag.Parse()

	// 创建应用实例
	app, err := master.NewApp(*configPath, *env)
	if err != nil {
		log.Fatalf("Failed to create app: %v", err)
	}

	// 启动服务器的goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	// 等待中断信号或服务异常退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		log.Println("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}

	timeout := app.GetConfig().Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := app.Stop(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
		os.Exit(1)
	}
	log.Println("Server exiting")
}
