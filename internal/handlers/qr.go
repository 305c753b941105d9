package handlers

import (
	"log"
	"net/http"

	qrcode "github.com/skip2/go-qrcode"
)

const qrSize = 256

// qrCode serves a PNG QR code of the session URL so a phone can open the same game.
func (h *GameHandler) qrCode(w http.ResponseWriter, r *http.Request) {
	instance, ok := h.lookup(w, r)
	if !ok {
		return
	}
	png, err := qrcode.Encode(buildInviteURL(r, instance.ID), qrcode.Medium, qrSize)
	if err != nil {
		log.Printf("qr encode failed game=%s err=%v", instance.ID, err)
		http.Error(w, "failed to encode", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
