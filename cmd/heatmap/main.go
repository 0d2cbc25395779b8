package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/places-heatmap/pkg"
	"github.com/lintang-b-s/places-heatmap/pkg/aggregator"
	"github.com/lintang-b-s/places-heatmap/pkg/di/config"
	logger_di "github.com/lintang-b-s/places-heatmap/pkg/di/logger"
	places_di "github.com/lintang-b-s/places-heatmap/pkg/di/places"
	"github.com/lintang-b-s/places-heatmap/pkg/heatmap"
	"github.com/lintang-b-s/places-heatmap/pkg/session"

	"github.com/k0kubun/go-ansi"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

var (
	keywords  = flag.String("k", "", "comma separated keywords, at most one per palette color")
	outputDir = flag.String("o", "", "directory to write one geojson file per rendered overlay")
)

func main() {
	flag.Parse()
	if strings.TrimSpace(*keywords) == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.New()
	if err != nil {
		log.Fatal(err)
	}
	logger, cleanup, err := logger_di.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	client := places_di.New(cfg, logger)
	renderer := heatmap.NewMemoryRenderer()
	sess, err := session.New("cli", session.Config{
		Center:       cfg.Center,
		OffsetRadius: cfg.OffsetRadius,
		Palette:      heatmap.DefaultPalette,
		Workers:      cfg.Workers,
		OnNotice: func(n session.Notice) {
			fmt.Fprintf(os.Stderr, "\n[%s] %s: %s\n", n.Kind, n.Keyword, n.Message)
		},
	}, aggregator.New(client, logger), renderer, logger)
	if err != nil {
		log.Fatal(err)
	}

	subs := []*session.Submission{}
	for _, kw := range strings.Split(*keywords, ",") {
		kw = strings.TrimSpace(kw)
		sub, err := sess.Submit(kw)
		if err != nil {
			// duplicate and capacity rejections already came through OnNotice.
			if code := pkg.ErrorCode(err); code != pkg.ErrConflict && code != pkg.ErrCapacityExceeded {
				fmt.Fprintf(os.Stderr, "%q: %v\n", kw, err)
			}
			continue
		}
		subs = append(subs, sub)
	}

	bar := progressbar.NewOptions(len(subs),
		progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("[cyan]Searching places..."),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))
	for _, sub := range subs {
		if _, err := sub.Wait(context.Background()); err != nil {
			log.Fatal(err)
		}
		_ = bar.Add(1)
	}
	_ = bar.Finish()
	fmt.Println()

	for _, l := range sess.Layers() {
		fmt.Printf("%-20s %s  %4d places  %d outside the search area\n", l.Keyword, l.Color, l.Points, l.OutsideArea)
	}

	if *outputDir != "" {
		if err := writeGeoJSON(*outputDir, renderer.Layers()); err != nil {
			logger.Error("write geojson", zap.Error(err))
		}
	}

	if err := sess.Close(); err != nil {
		logger.Error("close session", zap.Error(err))
	}
}

func writeGeoJSON(dir string, layers []heatmap.Layer) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, l := range layers {
		raw, err := json.Marshal(heatmap.FeatureCollection(l, true))
		if err != nil {
			return err
		}
		name := strings.ReplaceAll(l.Keyword, string(filepath.Separator), "_") + ".geojson"
		if err := os.WriteFile(filepath.Join(dir, name), raw, 0644); err != nil {
			return err
		}
	}
	return nil
}
