package main

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/overtime-analyzer/internal/config"
	appHTTP "github.com/cmlabs-hris/overtime-analyzer/internal/handler/http"
	"github.com/cmlabs-hris/overtime-analyzer/internal/pkg/spreadsheet"
	"github.com/cmlabs-hris/overtime-analyzer/internal/repository/memory"
	overtimeService "github.com/cmlabs-hris/overtime-analyzer/internal/service/overtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	datasetStore := memory.NewDatasetStore()
	workbookDecoder := spreadsheet.NewDecoder()

	overtimeSvc := overtimeService.NewOvertimeService(datasetStore, workbookDecoder)
	overtimeHandler := appHTTP.NewOvertimeHandler(overtimeSvc, cfg.MaxUploadBytes())

	router := appHTTP.NewRouter(cfg.App.Env, cfg.App.AllowedOrigins, overtimeHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
