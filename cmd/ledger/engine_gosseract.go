//go:build gosseract

package main

import _ "note-ledger/internal/ocr/tesseract" // регистрирует движок "tesseract"
