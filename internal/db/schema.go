package db

// SchemaSQL contains the database schema initialization SQL.
const SchemaSQL = `
    -- ==========================================================================
    -- PIECE TABLE (source content)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS piece SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS client_id ON piece TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS title ON piece TYPE string;
    DEFINE FIELD IF NOT EXISTS body ON piece TYPE string;
    DEFINE FIELD IF NOT EXISTS source ON piece TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS word_count ON piece TYPE int;
    DEFINE FIELD IF NOT EXISTS created ON piece TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS piece_client ON piece FIELDS client_id;

    -- ==========================================================================
    -- ARCHIVIST_TAGS TABLE (one per piece, record ID = piece ID)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS archivist_tags SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS piece_id ON archivist_tags TYPE string;
    DEFINE FIELD IF NOT EXISTS themes ON archivist_tags TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS voice_tags ON archivist_tags TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS content_type ON archivist_tags TYPE string;
    DEFINE FIELD IF NOT EXISTS status ON archivist_tags TYPE string;
    DEFINE FIELD IF NOT EXISTS quality_band ON archivist_tags TYPE string;
    DEFINE FIELD IF NOT EXISTS key_insights ON archivist_tags TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS notes ON archivist_tags TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS updated ON archivist_tags TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS archivist_piece ON archivist_tags FIELDS piece_id UNIQUE;

    -- ==========================================================================
    -- PLACEMENT TABLE (one per piece, record ID = piece ID)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS placement SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS piece_id ON placement TYPE string;
    DEFINE FIELD IF NOT EXISTS primary_platform ON placement TYPE string;
    DEFINE FIELD IF NOT EXISTS secondary_platforms ON placement TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS content_potential ON placement TYPE string;
    DEFINE FIELD IF NOT EXISTS recommended_formats ON placement TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS reasoning ON placement TYPE string;
    DEFINE FIELD IF NOT EXISTS updated ON placement TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS placement_piece ON placement FIELDS piece_id UNIQUE;

    -- ==========================================================================
    -- REPURPOSE_ITEM TABLE (derivative content, replaced wholesale per piece)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS repurpose_item SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS piece_id ON repurpose_item TYPE string;
    DEFINE FIELD IF NOT EXISTS platform ON repurpose_item TYPE string;
    DEFINE FIELD IF NOT EXISTS format ON repurpose_item TYPE string;
    DEFINE FIELD IF NOT EXISTS position ON repurpose_item TYPE int;
    -- serialized JSON payload, platform-specific shape
    DEFINE FIELD IF NOT EXISTS content ON repurpose_item TYPE string;
    DEFINE FIELD IF NOT EXISTS created ON repurpose_item TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS repurpose_piece ON repurpose_item FIELDS piece_id;

    -- ==========================================================================
    -- CONTENT_SERIES TABLE (replaced wholesale per client)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS content_series SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS client_id ON content_series TYPE string;
    DEFINE FIELD IF NOT EXISTS title ON content_series TYPE string;
    DEFINE FIELD IF NOT EXISTS description ON content_series TYPE string;
    DEFINE FIELD IF NOT EXISTS theme ON content_series TYPE string;
    DEFINE FIELD IF NOT EXISTS included_piece_ids ON content_series TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS recommended_sequence ON content_series TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS series_type ON content_series TYPE string;
    DEFINE FIELD IF NOT EXISTS estimated_pieces ON content_series TYPE int;
    DEFINE FIELD IF NOT EXISTS gaps ON content_series TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS created ON content_series TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS series_client ON content_series FIELDS client_id;

    -- ==========================================================================
    -- CONTENT_CALENDAR TABLE (one per client, record ID = client ID)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS content_calendar SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS client_id ON content_calendar TYPE string;
    -- serialized CalendarPlan JSON
    DEFINE FIELD IF NOT EXISTS calendar ON content_calendar TYPE string;
    DEFINE FIELD IF NOT EXISTS strategy_notes ON content_calendar TYPE string;
    DEFINE FIELD IF NOT EXISTS content_gaps ON content_calendar TYPE array<string>;
    DEFINE FIELD IF NOT EXISTS created ON content_calendar TYPE datetime DEFAULT time::now();

    -- ==========================================================================
    -- CLIENT_STRATEGY TABLE (one per client, record ID = client ID)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS client_strategy SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS client_id ON client_strategy TYPE string;
    -- serialized StrategistIntake JSON
    DEFINE FIELD IF NOT EXISTS intake ON client_strategy TYPE string;
    -- serialized StrategistOutput JSON
    DEFINE FIELD IF NOT EXISTS output ON client_strategy TYPE string;
    DEFINE FIELD IF NOT EXISTS updated ON client_strategy TYPE datetime DEFAULT time::now();
`
