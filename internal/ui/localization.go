package ui

// Package ui provides user interface components

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle             = "app_title"
	KeyPickImage            = "pick_image"
	KeyConvert              = "convert"
	KeyConvertTo            = "convert_to"
	KeyOutputName           = "output_name"
	KeyOpen                 = "open"
	KeyReveal               = "reveal"
	KeyRemove               = "remove"
	KeyRetry                = "retry"
	KeySettings             = "settings"
	KeyFile                 = "file"
	KeyLanguage             = "language"
	KeyDownloadsDirectory   = "downloads_directory"
	KeyAutoReveal           = "auto_reveal"
	KeySave                 = "save"
	KeyCancel               = "cancel"
	KeyBrowse               = "browse"
	KeyHistory              = "history"
	KeyNoFileSelected       = "no_file_selected"
	KeySettingsSaved        = "settings_saved"
	KeyConversionStarted    = "conversion_started"
	KeyConversionCompleted  = "conversion_completed"
	KeyConversionFailed     = "conversion_failed"
	KeyConversionInProgress = "conversion_in_progress"
	KeyVerifying            = "verifying"
	KeyUploading            = "uploading"
	KeyVerifyLoading        = "verify_loading"
	KeyVerifyReady          = "verify_ready"
	KeyVerifyFailed         = "verify_failed"
	KeyVerifyNotConfigured  = "verify_not_configured"
	KeyPreviewFailed        = "preview_failed"
	KeyErrorOpeningFile     = "error_opening_file"
	KeyErrorRemovingTask    = "error_removing_task"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:             "ImgShift",
		KeyPickImage:            "Pick Image",
		KeyConvert:              "Convert",
		KeyConvertTo:            "Convert to",
		KeyOutputName:           "Output name (optional)",
		KeyOpen:                 "Open",
		KeyReveal:               "Reveal",
		KeyRemove:               "Remove",
		KeyRetry:                "Retry",
		KeySettings:             "Settings",
		KeyFile:                 "File",
		KeyLanguage:             "Language",
		KeyDownloadsDirectory:   "Downloads Directory",
		KeyAutoReveal:           "Reveal finished files automatically",
		KeySave:                 "Save",
		KeyCancel:               "Cancel",
		KeyBrowse:               "Browse",
		KeyHistory:              "History",
		KeyNoFileSelected:       "Pick an image to convert",
		KeySettingsSaved:        "Settings saved successfully!",
		KeyConversionStarted:    "Conversion started",
		KeyConversionCompleted:  "Conversion completed",
		KeyConversionFailed:     "Conversion failed",
		KeyConversionInProgress: "A conversion is already in progress",
		KeyVerifying:            "Verifying...",
		KeyUploading:            "Uploading...",
		KeyVerifyLoading:        "Connecting to the verification service...",
		KeyVerifyReady:          "Ready to convert",
		KeyVerifyFailed:         "Verification service unavailable",
		KeyVerifyNotConfigured:  "Conversion is disabled: no site key configured",
		KeyPreviewFailed:        "Preview unavailable for this file",
		KeyErrorOpeningFile:     "Error opening file",
		KeyErrorRemovingTask:    "Error removing entry",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:             "ImgShift",
		KeyPickImage:            "Выбрать изображение",
		KeyConvert:              "Конвертировать",
		KeyConvertTo:            "Конвертировать в",
		KeyOutputName:           "Имя файла (необязательно)",
		KeyOpen:                 "Открыть",
		KeyReveal:               "Показать в папке",
		KeyRemove:               "Удалить",
		KeyRetry:                "Повторить",
		KeySettings:             "Настройки",
		KeyFile:                 "Файл",
		KeyLanguage:             "Язык",
		KeyDownloadsDirectory:   "Папка загрузки",
		KeyAutoReveal:           "Автоматически показывать готовые файлы",
		KeySave:                 "Сохранить",
		KeyCancel:               "Отмена",
		KeyBrowse:               "Обзор",
		KeyHistory:              "История",
		KeyNoFileSelected:       "Выберите изображение для конвертации",
		KeySettingsSaved:        "Настройки успешно сохранены!",
		KeyConversionStarted:    "Конвертация начата",
		KeyConversionCompleted:  "Конвертация завершена",
		KeyConversionFailed:     "Ошибка конвертации",
		KeyConversionInProgress: "Конвертация уже выполняется",
		KeyVerifying:            "Проверка...",
		KeyUploading:            "Загрузка...",
		KeyVerifyLoading:        "Подключение к сервису проверки...",
		KeyVerifyReady:          "Готово к конвертации",
		KeyVerifyFailed:         "Сервис проверки недоступен",
		KeyVerifyNotConfigured:  "Конвертация отключена: не задан ключ сайта",
		KeyPreviewFailed:        "Предпросмотр недоступен для этого файла",
		KeyErrorOpeningFile:     "Ошибка открытия файла",
		KeyErrorRemovingTask:    "Ошибка удаления записи",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:             "ImgShift",
		KeyPickImage:            "Escolher Imagem",
		KeyConvert:              "Converter",
		KeyConvertTo:            "Converter para",
		KeyOutputName:           "Nome do arquivo (opcional)",
		KeyOpen:                 "Abrir",
		KeyReveal:               "Mostrar na pasta",
		KeyRemove:               "Remover",
		KeyRetry:                "Tentar novamente",
		KeySettings:             "Configurações",
		KeyFile:                 "Arquivo",
		KeyLanguage:             "Idioma",
		KeyDownloadsDirectory:   "Diretório de Download",
		KeyAutoReveal:           "Mostrar arquivos concluídos automaticamente",
		KeySave:                 "Salvar",
		KeyCancel:               "Cancelar",
		KeyBrowse:               "Navegar",
		KeyHistory:              "Histórico",
		KeyNoFileSelected:       "Escolha uma imagem para converter",
		KeySettingsSaved:        "Configurações salvas com sucesso!",
		KeyConversionStarted:    "Conversão iniciada",
		KeyConversionCompleted:  "Conversão concluída",
		KeyConversionFailed:     "Falha na conversão",
		KeyConversionInProgress: "Uma conversão já está em andamento",
		KeyVerifying:            "Verificando...",
		KeyUploading:            "Enviando...",
		KeyVerifyLoading:        "Conectando ao serviço de verificação...",
		KeyVerifyReady:          "Pronto para converter",
		KeyVerifyFailed:         "Serviço de verificação indisponível",
		KeyVerifyNotConfigured:  "Conversão desativada: chave do site não configurada",
		KeyPreviewFailed:        "Pré-visualização indisponível para este arquivo",
		KeyErrorOpeningFile:     "Erro ao abrir arquivo",
		KeyErrorRemovingTask:    "Erro ao remover entrada",
	}
}
