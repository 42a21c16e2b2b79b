package models

// WhitelistEntry representa una entrada del archivo whitelist.json del
// servidor (el mismo formato que consume el servidor de Minecraft)
type WhitelistEntry struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
}

// SetupPointer asocia una pantalla lógica con el mensaje que la muestra,
// para que re-ejecutar el setup edite en lugar de duplicar
type SetupPointer struct {
	ChannelID string `json:"channelId"`
	MessageID string `json:"messageId"`
}

// AdminList es la lista plana persistida de administradores
type AdminList struct {
	IDs []string `json:"ids"`
}
