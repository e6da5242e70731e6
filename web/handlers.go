package web

import (
	"log"
	"net/http"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/mogaika/w3d_browser/corpus"
	"github.com/mogaika/w3d_browser/status"
	"github.com/mogaika/w3d_browser/texture"
	"github.com/mogaika/w3d_browser/vfs"
	"github.com/mogaika/w3d_browser/w3d"
	"github.com/mogaika/w3d_browser/webutils"
)

const defaultPreviewSize = 256

func HandlerAjaxPack(w http.ResponseWriter, r *http.Request) {
	webutils.WriteJson(w, ServerDirectory.GetFileNamesList())
}

func HandlerAjaxPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, err := ServerDirectory.GetInstance(file)
	if err != nil {
		log.Printf("Error getting file from pack: %v", err)
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, data)
	}
}

func HandlerAjaxCheck(w http.ResponseWriter, r *http.Request) {
	opts := corpus.Options{
		Workers: ServerConfig.Workers,
		Parse:   w3d.HandlerOptions,
	}
	if r.URL.Query().Get("noskip") == "" {
		opts.Skip = ServerConfig.SkipReason
	}

	results, err := corpus.Run(ServerDirectory.Root(), opts)
	if err != nil {
		status.Error("Check failed: %v", err)
		webutils.WriteError(w, err)
		return
	}
	webutils.WriteJson(w, &struct {
		Summary corpus.Summary
		Results []corpus.Result
	}{corpus.Summarize(results), results})
}

// HandlerDumpPackFile downloads the raw entry, or the parsed model
// as indented json with ?json.
func HandlerDumpPackFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	if _, asJson := r.URL.Query()["json"]; asJson {
		if data, err := ServerDirectory.GetInstance(file); err != nil {
			webutils.WriteError(w, err)
		} else {
			webutils.WriteJsonFile(w, data, path.Base(strings.Replace(file, "\\", "/", -1)))
		}
		return
	}

	f, err := ServerDirectory.GetFile(file)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}

	if reader, err := vfs.OpenFileAndGetReader(f); err == nil {
		defer f.Close()
		webutils.WriteFile(w, reader, f.Name())
	} else {
		webutils.WriteError(w, errors.Wrapf(err, "Error getting file reader"))
	}
}

func HandlerTexture(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	size := defaultPreviewSize
	if s := r.URL.Query().Get("size"); s != "" {
		if v, err := strconv.Atoi(s); err != nil {
			webutils.WriteError(w, errors.Errorf("size '%s' is not integer", s))
			return
		} else {
			size = v
		}
	}

	img, err := ServerTextures.Resolve(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			w.WriteHeader(http.StatusNotFound)
		}
		webutils.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/webp")
	if err := texture.EncodeWebP(w, texture.Preview(img, size)); err != nil {
		log.Printf("[web] %v", err)
	}
}

func HandlerStatus(w http.ResponseWriter, r *http.Request) {
	status.ServeWs(w, r)
}
