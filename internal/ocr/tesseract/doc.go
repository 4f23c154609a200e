// Package tesseract подключает движок распознавания на основе libtesseract (gosseract).
// Движок регистрируется в ocr под именем "tesseract" только при сборке с тегом gosseract:
//
//	go build -tags gosseract ./cmd/ledger
package tesseract
