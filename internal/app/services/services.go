// Package services contains the business logic layer.
//
// Services defined in this package:
//   - AuthService: login, token issuing, access scope, approval queues
//   - MasterService: fakultas, prodi, kurikulum, mata kuliah, tahun akademik
//   - MahasiswaService / DosenService: records plus account provisioning
//   - JadwalService: class sections and schedule conflict detection
//   - KRSService: enrollment lifecycle
//   - NilaiService: grading, KHS and transcripts
//   - PresensiService: class meetings and attendance
//   - KeuanganService: tuition categories, billing, payment verification
//   - BiodataService: student biodata change requests
//   - DashboardService: role-dependent counters
package services
