package main

import (
	"flag"
	"log"

	"github.com/qmuntal/gltf"

	"github.com/mogaika/gltf_scene_browser/config"
	"github.com/mogaika/gltf_scene_browser/host/memscene"
	"github.com/mogaika/gltf_scene_browser/imp"
	"github.com/mogaika/gltf_scene_browser/regroup"
	"github.com/mogaika/gltf_scene_browser/web"
)

func main() {
	var file, addr, cfgpath, encoding string
	var norestore, doregroup, noserve bool
	flag.StringVar(&file, "f", "", "Path to .gltf or .glb file")
	flag.StringVar(&addr, "i", "", "Address of server (overrides config)")
	flag.StringVar(&cfgpath, "config", "", "Path to yaml config")
	flag.StringVar(&encoding, "encoding", "", "Legacy name encoding override")
	flag.BoolVar(&norestore, "norestore", false, "Do not re-activate the first animation after layering")
	flag.BoolVar(&doregroup, "regroup", false, "Run the naming convention regroup pass after import")
	flag.BoolVar(&noserve, "noserve", false, "Import only, do not start the inspection server")
	flag.Parse()

	if file == "" {
		flag.PrintDefaults()
		return
	}

	cfg := config.Default()
	if cfgpath != "" {
		var err error
		if cfg, err = config.LoadFromFile(cfgpath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		cfg.Web.Addr = addr
	}
	if encoding != "" {
		if err := config.SetEncoding(encoding); err != nil {
			log.Fatal(err)
		}
	}

	doc, err := gltf.Open(file)
	if err != nil {
		log.Fatalf("Failed to open %q: %v", file, err)
	}

	opts := imp.Options{
		RestoreFirstAnim: cfg.Import.RestoreFirstAnimation && !norestore,
	}
	if cfg.Import.OnDanglingTarget == "abort" {
		opts.OnDanglingTarget = imp.DanglingAbort
	}

	scene := memscene.New()
	ctx := imp.NewContext(doc, scene, opts)
	if err := imp.CreateScene(ctx); err != nil {
		log.Fatalf("Import of %q failed: %v", file, err)
	}

	if doregroup || cfg.Regroup.Enabled {
		collapsed := regroup.ByNamingConvention(scene, regroup.Options{
			SkipNameContains: cfg.Regroup.SkipNameContains,
		})
		log.Printf("[regroup] Collapsed %v instances", collapsed)
	}

	if noserve {
		return
	}

	if err := web.StartServer(cfg.Web.Addr, &web.View{
		Document: doc,
		Graph:    ctx.Graph,
		Scene:    scene,
	}); err != nil {
		log.Fatal(err)
	}
}
