package web

import (
	"log"
	"net/http"
	"os"
	"path"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/w3d_browser/config"
	"github.com/mogaika/w3d_browser/drivers/directory"
	"github.com/mogaika/w3d_browser/texture"
	"github.com/mogaika/w3d_browser/vfs"
)

var ServerDirectory *directory.Directory
var ServerConfig *config.Config
var ServerTextures *texture.Cache

func NewRouter(d vfs.Directory, cfg *config.Config, webPath string) (http.Handler, error) {
	ServerDirectory = directory.NewDirectoryDriver(d)
	ServerConfig = cfg

	idx, err := texture.BuildIndex(d, cfg.TextureDirs)
	if err != nil {
		return nil, err
	}
	ServerTextures = texture.NewCache(idx)
	log.Printf("[web] Indexed %d textures", idx.Len())

	r := mux.NewRouter()
	r.HandleFunc("/json/pack/{file:.+}", HandlerAjaxPackFile)
	r.HandleFunc("/json/pack", HandlerAjaxPack)
	r.HandleFunc("/json/check", HandlerAjaxCheck)
	r.HandleFunc("/dump/pack/{file:.+}", HandlerDumpPackFile)
	r.HandleFunc("/texture/{name}", HandlerTexture)
	r.HandleFunc("/ws/status", HandlerStatus)

	if webPath != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(path.Join(webPath, "data"))))
	}

	h := handlers.RecoveryHandler()(r)
	h = handlers.LoggingHandler(os.Stdout, h)
	return h, nil
}

func StartServer(addr string, d vfs.Directory, cfg *config.Config, webPath string) error {
	h, err := NewRouter(d, cfg, webPath)
	if err != nil {
		return err
	}

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
