// Command cvgen renders a profile JSON file to a PDF on disk.
//
//	cvgen -profile me.json -template classic -out ./out
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/rs/zerolog/log"

	"applica-cv/internal/adapter/memstore"
	"applica-cv/internal/adapter/storage"
	"applica-cv/internal/config"
	"applica-cv/internal/cv/templates"
	"applica-cv/internal/logger"
	"applica-cv/internal/model"
	"applica-cv/internal/usecase"
	infra "applica-cv/pkg/infrastructure"
)

func main() {
	profilePath := flag.String("profile", "profile.json", "profile JSON file")
	templateID := flag.String("template", templates.ModernID, "template id (modern, classic, minimal)")
	outDir := flag.String("out", ".", "output directory")
	name := flag.String("name", "", "output file name (defaults to {Name}_CV.pdf)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logger.Setup("info", true)
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.Log.Level, true)

	raw, err := os.ReadFile(*profilePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *profilePath).Msg("read profile")
	}
	if err := model.ValidateProfileJSON(raw); err != nil {
		log.Fatal().Err(err).Msg("profile rejected")
	}
	var p model.Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Fatal().Err(err).Msg("decode profile")
	}

	renderer := infra.NewChromedpRenderer(
		infra.WithExecPath(cfg.Render.ChromePath),
		infra.WithTimeout(cfg.RenderTimeout()),
	)
	profiles := usecase.NewProfileService(memstore.NewProfiles())
	cvs := usecase.NewCVService(renderer, memstore.NewBlobs(""), memstore.NewHistory(), profiles)

	fileName := *name
	if fileName == "" {
		fileName = usecase.DownloadName(&p)
	}
	if err := cvs.Download(context.Background(), &p, *templateID, fileName, storage.FileSaver{Dir: *outDir}); err != nil {
		log.Fatal().Err(err).Msg("generate CV")
	}
	log.Info().Str("dir", *outDir).Str("file", fileName).Str("template", *templateID).Msg("CV written")
}
