package domain

var (
	SESSION_START_SUCCESS      = "Berhasil memulai sesi belajar"
	SESSION_START_FAILED       = "Gagal memulai sesi belajar"
	SESSION_GET_SUCCESS        = "Berhasil mendapatkan data sesi"
	SESSION_GET_FAILED         = "Gagal mendapatkan data sesi"
	SESSION_LIST_SUCCESS       = "Berhasil mendapatkan daftar sesi"
	SESSION_LIST_FAILED        = "Gagal mendapatkan daftar sesi"
	SESSION_END_SUCCESS        = "Berhasil mengakhiri sesi"
	SESSION_END_FAILED         = "Gagal mengakhiri sesi"
	SESSION_ANALYSIS_SUCCESS   = "Berhasil mendapatkan analisis sesi"
	SESSION_ANALYSIS_FAILED    = "Gagal mendapatkan analisis sesi"
	TUTOR_SEND_SUCCESS         = "Berhasil mengirim pesan ke tutor"
	TUTOR_SEND_FAILED          = "Gagal mengirim pesan ke tutor"
	TUTOR_HISTORY_SUCCESS      = "Berhasil mendapatkan riwayat chat"
	TUTOR_HISTORY_FAILED       = "Gagal mendapatkan riwayat chat"
	QUIZ_GET_SUCCESS           = "Berhasil mendapatkan progres kuis"
	QUIZ_GET_FAILED            = "Gagal mendapatkan progres kuis"
	QUIZ_SUBMIT_ANSWER_SUCCESS = "Berhasil submit jawaban"
	QUIZ_SUBMIT_ANSWER_FAILED  = "Gagal submit jawaban"
	QUIZ_ATTEMPT_LIST_SUCCESS  = "Berhasil mendapatkan riwayat kuis"
	QUIZ_ATTEMPT_LIST_FAILED   = "Gagal mendapatkan riwayat kuis"
)
