// Package ocr определяет узкий интерфейс распознавания текста на изображении.
// Конкретный движок (библиотека libtesseract или внешний процесс) подключается
// через Engine, поэтому остальной код не зависит от способа распознавания.
package ocr
