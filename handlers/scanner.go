package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"otconsole/attendance"
	"otconsole/export"
	"otconsole/response"
)

const maxScannerLog = 32 << 20

type ScannerHandler struct{}

func NewScannerHandler() *ScannerHandler {
	return &ScannerHandler{}
}

// Convert turns an uploaded scanner log into sorted punches. The log is read
// from the multipart field "file" or from the raw body. format=json returns
// the punches; the default is a spreadsheet download.
func (h *ScannerHandler) Convert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxScannerLog)
	var src io.Reader = r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			response.BadRequest(w, "Upload the scanner log in the file field", nil)
			return
		}
		defer file.Close()
		src = file
	}

	punches, err := attendance.Convert(src)
	if err != nil {
		response.BadRequest(w, "Failed to read scanner log", nil)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		if punches == nil {
			punches = []attendance.Punch{}
		}
		response.Success(w, punches)
		return
	}

	var buf bytes.Buffer
	if err := export.PunchesXLSX(&buf, punches); err != nil {
		response.InternalServerError(w, "Failed to render spreadsheet")
		return
	}
	w.Header().Set("Content-Type", export.ContentTypeXLSX)
	w.Header().Set("Content-Disposition", "attachment; filename=Sorted_Attendance.xlsx")
	_, _ = w.Write(buf.Bytes())
}
