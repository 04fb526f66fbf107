// Command glmultigrid is an interactive fractal viewer drawn with the
// multigrid renderer.
//
// Drag to pan, scroll to zoom. The keys w, a, s and d pan, q and z zoom and
// x quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/glmultigrid/internal/config"
	"github.com/stewi1014/glmultigrid/multigrid"
)

func main() {
	opts := config.Default()
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts.Register(fs)
	proxy := fs.String("proxy", "quad", "proxy geometry, quad or sphere")
	if err := opts.Parse(fs, os.Args[1:]); err != nil {
		log.Fatal(err)
	}
	if *proxy != "quad" && *proxy != "sphere" {
		log.Fatalf("unknown proxy %q", *proxy)
	}

	if opts.Debug {
		multigrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	go func() {
		defer CatchPanicToContext(mainQuit)
		mainQuit(gtkMain(mainContext, opts, *proxy == "sphere"))
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
}

func gtkMain(ctx context.Context, opts config.Options, sphere bool) error {
	runtime.LockOSThread()

	gtk.Init(nil)
	app, err := gtk.ApplicationNew("com.github.stewi1014.glmultigrid", glib.APPLICATION_FLAGS_NON_UNIQUE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		renderWindow := NewRenderWindow(app, opts, sphere, appQuit)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		renderWindow.SetTitle("GLMultigrid " + opts.Fractal().Name)
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)
	return context.Cause(appContext)
}
