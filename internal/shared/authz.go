package shared

// Master data permissions. The HR API issues them in the profile's
// permission list as master_<entity>.<action>.
const (
	PermGolonganCreate = "master_golongan.create"
	PermGolonganEdit   = "master_golongan.edit"

	PermJabatanCreate = "master_jabatan.create"
	PermJabatanEdit   = "master_jabatan.edit"

	PermJenisIzinCreate = "master_jenis_izin.create"
	PermJenisIzinEdit   = "master_jenis_izin.edit"

	PermStrukturCreate = "master_struktur.create"
	PermStrukturEdit   = "master_struktur.edit"
)

// MasterDataScopes lists all permissions related to master data screens.
func MasterDataScopes() []string {
	return []string{
		PermGolonganCreate,
		PermGolonganEdit,
		PermJabatanCreate,
		PermJabatanEdit,
		PermJenisIzinCreate,
		PermJenisIzinEdit,
		PermStrukturCreate,
		PermStrukturEdit,
	}
}
