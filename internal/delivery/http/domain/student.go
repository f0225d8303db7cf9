package domain

var (
	STUDENT_REGISTER_SUCCESS = "Berhasil mendaftarkan siswa"
	STUDENT_REGISTER_FAILED  = "Gagal mendaftarkan siswa"
	STUDENT_GET_SUCCESS      = "Berhasil mendapatkan data siswa"
	STUDENT_GET_FAILED       = "Gagal mendapatkan data siswa"
	STUDENT_REPORT_SUCCESS   = "Berhasil generate report siswa"
	STUDENT_REPORT_FAILED    = "Gagal generate report siswa"
	APPROVAL_SUCCESS         = "Berhasil memproses persetujuan siswa"
	APPROVAL_FAILED          = "Gagal memproses persetujuan siswa"
	SCHOOL_STUDENTS_SUCCESS  = "Berhasil mendapatkan daftar siswa sekolah"
	SCHOOL_STUDENTS_FAILED   = "Gagal mendapatkan daftar siswa sekolah"
)
