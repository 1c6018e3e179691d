package appointment

import "github.com/BruksfildServices01/rdv-service/internal/models"

// ===============================
// Appointment Types
// ===============================

type Type string

const (
	TypeServerInstall    Type = "Installation serveur"
	TypeSecondaryInstall Type = "Installation poste secondaire"
	TypeServerSwap       Type = "Changement de poste serveur"
	TypeTraining         Type = "Formation"
	TypeDatabaseExport   Type = "Export BDD"
	TypeDemo             Type = "Démo"
	TypeUpdate           Type = "Mise à jour"
	TypeOther            Type = "Autre"
)

var AllTypes = []Type{
	TypeServerInstall,
	TypeSecondaryInstall,
	TypeServerSwap,
	TypeTraining,
	TypeDatabaseExport,
	TypeDemo,
	TypeUpdate,
	TypeOther,
}

func IsValidType(t string) bool {
	for _, known := range AllTypes {
		if string(known) == t {
			return true
		}
	}
	return false
}

// One canonical set, used by every transition that checks practitioners.
var practitionerRequired = map[Type]bool{
	TypeServerInstall: true,
	TypeTraining:      true,
	TypeDemo:          true,
	TypeOther:         true,
}

func RequiresPractitioners(t Type) bool {
	return practitionerRequired[t]
}

// The contact email receives the generated service contract.
func RequiresEmail(t Type) bool {
	return t == TypeServerInstall
}

// ===============================
// Checklist Templates
// ===============================

var checklistTemplates = map[Type][]string{
	TypeServerInstall: {
		"Serveur installé",
		"Base de données configurée",
		"Sauvegarde paramétrée",
		"Postes clients connectés",
		"Formation utilisateurs",
		"Contrat à envoyer",
	},
	TypeSecondaryInstall: {
		"Poste installé",
		"Connexion au serveur vérifiée",
		"Impression testée",
	},
	TypeServerSwap: {
		"Sauvegarde ancienne machine",
		"Transfert des données",
		"Reconfiguration des postes",
		"Ancienne machine effacée",
	},
	TypeUpdate: {
		"Sauvegarde avant mise à jour",
		"Mise à jour appliquée",
		"Vérification fonctionnelle",
	},
}

func ChecklistTemplate(t Type) []string {
	return checklistTemplates[t]
}

func HasChecklist(t Type) bool {
	return len(checklistTemplates[t]) > 0
}

// NewChecklist returns the unchecked items of the type's template.
func NewChecklist(t Type) []models.ChecklistItem {
	labels := checklistTemplates[t]
	if len(labels) == 0 {
		return nil
	}

	items := make([]models.ChecklistItem, 0, len(labels))
	for _, l := range labels {
		items = append(items, models.ChecklistItem{Label: l})
	}
	return items
}
