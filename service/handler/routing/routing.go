package routing

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/openrelay/service-filerelay/service/business"
	"github.com/openrelay/service-filerelay/service/storage"
	"github.com/openrelay/service-filerelay/service/storage/repository"
	"github.com/openrelay/service-filerelay/service/types"
	"github.com/pitabwire/frame"
	"github.com/pitabwire/util"
)

// NewRouterV1 exposes the durable download surface backing the links
// handed out on upload and grant, plus a liveness probe.
func NewRouterV1(service *frame.Service, registry repository.FileRepository, provider storage.Provider) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	router.Methods(http.MethodGet).
		Path("/healthz").
		Name("Healthz").
		HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

	router.Methods(http.MethodGet).
		Path("/file/v1/{fileKey}").
		Name("DownloadFile").
		HandlerFunc(downloadHandler(service, registry, provider))

	return router
}

func downloadHandler(service *frame.Service, registry repository.FileRepository, provider storage.Provider) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		logger := service.Log(ctx)

		vars := mux.Vars(req)
		key := types.FileKey(vars["fileKey"])
		if !business.IsValidFileKey(key) {
			http.Error(w, "invalid file key", http.StatusBadRequest)
			return
		}

		record, err := registry.GetByKey(ctx, key)
		if err != nil {
			if frame.ErrorIsNoRows(err) {
				http.Error(w, "file not found", http.StatusNotFound)
				return
			}
			logger.WithError(err).WithField("file_key", key).Error("registry lookup failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		reader, cleanup, err := storage.Download(ctx, provider, record.MirrorBucket, record.MirrorPath)
		if err != nil {
			logger.WithError(err).WithField("file_key", key).Error("mirror read failed")
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer cleanup()

		if record.Mimetype != "" {
			w.Header().Set("Content-Type", record.Mimetype)
		} else {
			w.Header().Set("Content-Type", "application/octet-stream")
		}
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.Name))
		if record.Size > 0 {
			w.Header().Set("Content-Length", fmt.Sprintf("%d", record.Size))
		}

		if _, err = io.Copy(w, reader); err != nil {
			util.Log(ctx).WithError(err).WithField("file_key", key).Warn("download stream interrupted")
		}
	}
}
